package analyze

import (
	"fmt"
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// Tagger is the NLP capability: named entities plus noun-phrase keywords,
// both in document order.
type Tagger interface {
	Tag(text string) (entities []Entity, keywords []string, err error)
}

// ProseTagger runs prose's tokenizer, POS tagger and NER over the text.
type ProseTagger struct{}

func NewProseTagger() *ProseTagger { return &ProseTagger{} }

func (ProseTagger) Tag(text string) ([]Entity, []string, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, nil, fmt.Errorf("nlp parse: %w", err)
	}

	var entities []Entity
	for _, ent := range doc.Entities() {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	return entities, nounChunks(doc.Tokens()), nil
}

// nounChunks collects base noun phrases from POS tags: greedy runs of
// determiner/possessive/adjective/noun tokens that contain at least one noun.
// prose has no chunker, so this approximates one on its Penn tags.
func nounChunks(tokens []prose.Token) []string {
	var chunks []string
	var run []prose.Token

	flush := func() {
		hasNoun := false
		for _, t := range run {
			if strings.HasPrefix(t.Tag, "NN") {
				hasNoun = true
				break
			}
		}
		if hasNoun {
			words := make([]string, 0, len(run))
			for _, t := range run {
				words = append(words, t.Text)
			}
			chunks = append(chunks, strings.Join(words, " "))
		}
		run = run[:0]
	}

	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok.Tag, "NN"),
			strings.HasPrefix(tok.Tag, "JJ"),
			tok.Tag == "DT",
			tok.Tag == "PRP$":
			run = append(run, tok)
		default:
			flush()
		}
	}
	flush()
	return chunks
}
