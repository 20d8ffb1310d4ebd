package entity

import (
	"strings"
	"time"
)

const (
	articleFilePrefix = "articulo_"
	articleFileExt    = ".txt"
)

// ArticleRequest holds the two form values for the lifetime of one
// generation. Neither value is persisted.
type ArticleRequest struct {
	APIKey string
	Topic  string
}

type Article struct {
	Topic string
	Text  string
}

// FileName returns the download name for the article.
func (a Article) FileName() string {
	return FileNameForTopic(a.Topic)
}

// Bytes returns the exact UTF-8 encoding of the text, with no framing.
func (a Article) Bytes() []byte {
	return []byte(a.Text)
}

// FileNameForTopic replaces every space in topic, not only the first one.
func FileNameForTopic(topic string) string {
	return articleFilePrefix + strings.ReplaceAll(topic, " ", "_") + articleFileExt
}

type Artifact struct {
	ID        string
	FileName  string
	Content   []byte
	CreatedAt time.Time
}
