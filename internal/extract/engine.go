package extract

import (
	"fmt"
	"image/png"
	"os"

	"github.com/gen2brain/go-fitz"
)

// pdfDocument is the slice of the PDF engine the pipeline depends on.
// Wrapping go-fitz behind it keeps the OCR-fallback branch testable.
type pdfDocument interface {
	NumPages() int
	PageText(n int) (string, error)
	RenderPNG(n int, path string) error
	Close() error
}

type pdfOpener func(path string) (pdfDocument, error)

type fitzDocument struct {
	doc *fitz.Document
}

func openFitz(path string) (pdfDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &fitzDocument{doc: doc}, nil
}

func (d *fitzDocument) NumPages() int { return d.doc.NumPage() }

func (d *fitzDocument) PageText(n int) (string, error) {
	return d.doc.Text(n)
}

func (d *fitzDocument) RenderPNG(n int, path string) error {
	img, err := d.doc.Image(n)
	if err != nil {
		return fmt.Errorf("rasterize page %d: %w", n+1, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode page %d: %w", n+1, err)
	}
	return f.Close()
}

func (d *fitzDocument) Close() error { return d.doc.Close() }
