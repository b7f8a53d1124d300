package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/seyi-adel/docintake/constants"
)

// extractDOCX pulls paragraph text out of word/document.xml. DOCX is a zip
// of OOXML parts; each <w:p> is a paragraph and its <w:t> runs carry the text.
func (e *Extractor) extractDOCX(path string) (TextExtractionResult, error) {
	res := TextExtractionResult{SourceType: constants.DOCX, Method: "docx", Pages: 1}

	paras, err := docxParagraphs(path)
	if err != nil {
		return res, err
	}
	res.Text = strings.Join(paras, "\n")
	return res, nil
}

func docxParagraphs(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer r.Close()

	var docXML io.ReadCloser
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return nil, fmt.Errorf("open document.xml: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return nil, fmt.Errorf("docx %q has no word/document.xml", path)
	}
	defer docXML.Close()

	return readParagraphs(docXML)
}

func readParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var paras []string
	var cur strings.Builder
	inPara := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				cur.Reset()
			case "t":
				if inPara {
					var s string
					if err := dec.DecodeElement(&s, &t); err != nil {
						return nil, fmt.Errorf("parse text run: %w", err)
					}
					cur.WriteString(s)
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inPara {
				paras = append(paras, cur.String())
				inPara = false
			}
		}
	}
	return paras, nil
}
