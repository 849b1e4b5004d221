//go:build js && wasm

// Command voyager-wasm is the browser runtime of a voyager page.
//
// It reads the bodies and the zoom configuration embedded in the page,
// creates one element per body and resizes them as the reader scrolls.
//
//	GOOS=js GOARCH=wasm go build -o dist/voyager.wasm ./cmd/voyager-wasm
package main

import (
	"encoding/json"
	"os"
	"syscall/js"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/errors"
	"github.com/matzehuels/voyager/pkg/zoom"
)

const (
	bodiesScriptID = "voyager-bodies"
	configScriptID = "voyager-config"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "voyager"})

	doc := js.Global().Get("document")
	page, err := newDOMPage(js.Global(), doc)
	if err != nil {
		logger.Error("page setup failed", "err", err)
		return
	}

	var bodies []body.Body
	if err := readJSON(doc, bodiesScriptID, &bodies); err != nil {
		logger.Error("read bodies", "err", err)
		return
	}
	cfg := zoom.DefaultConfig()
	if err := readJSON(doc, configScriptID, &cfg); err != nil {
		logger.Warn("using default zoom config", "err", err)
		cfg = zoom.DefaultConfig()
	}

	scene, err := zoom.Run(page, bodies, cfg)
	if err != nil {
		logger.Error("zoom engine failed", "err", err)
		return
	}
	logger.Debug("zoom engine running", "bodies", len(bodies), "height", scene.TotalHeight())

	// Keep the callbacks alive.
	select {}
}

// readJSON decodes the text of the script element with the given id.
func readJSON(doc js.Value, id string, v any) error {
	el := doc.Call("getElementById", id)
	if el.IsNull() {
		return errors.New(errors.ErrCodeMissingElement, "#%s not found", id)
	}
	if err := json.Unmarshal([]byte(el.Get("textContent").String()), v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode #%s", id)
	}
	return nil
}
