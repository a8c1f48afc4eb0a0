package present

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/disintegration/imaging"
)

// DecodeDataImage decodes a `data:<mime>;base64,<data>` uri into raw
// image bytes.
func DecodeDataImage(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data uri")
	}
	_, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return nil, fmt.Errorf("data uri is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data uri payload: %w", err)
	}
	return data, nil
}

// PreviewImage decodes the data uri, re-encodes it as a png in a temp
// file and hands it to the platform's default image viewer. Failure here
// is never fatal; the caller reports it as a warning.
func PreviewImage(uri string) error {
	data, err := DecodeDataImage(uri)
	if err != nil {
		return err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	f, err := os.CreateTemp("", "stash-scrape-*.png")
	if err != nil {
		return err
	}
	err = imaging.Encode(f, img, imaging.PNG)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write preview file: %w", err)
	}

	return openViewer(f.Name())
}

func openViewer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return fmt.Errorf("no image viewer available: %w", err)
		}
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
