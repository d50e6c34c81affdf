package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Item is a votable movie or series as served by the API.
// The API may name the identifier either "id" or "_id".
type Item struct {
	ID        string `json:"id"`
	Titulo    string `json:"titulo"`
	Genero    string `json:"genero"`
	Descricao string `json:"descricao,omitempty"`
	Imagem    string `json:"imagem,omitempty"`
	Gostei    int    `json:"gostei"`
	NaoGostei int    `json:"naoGostei"`
}

func (it *Item) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID        json.RawMessage `json:"id"`
		MongoID   json.RawMessage `json:"_id"`
		Titulo    string          `json:"titulo"`
		Genero    string          `json:"genero"`
		Descricao string          `json:"descricao"`
		Imagem    string          `json:"imagem"`
		Gostei    int             `json:"gostei"`
		NaoGostei int             `json:"naoGostei"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	id, err := idString(raw.ID)
	if err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	if id == "" {
		if id, err = idString(raw.MongoID); err != nil {
			return fmt.Errorf("item _id: %w", err)
		}
	}
	*it = Item{
		ID:        id,
		Titulo:    raw.Titulo,
		Genero:    raw.Genero,
		Descricao: raw.Descricao,
		Imagem:    raw.Imagem,
		Gostei:    raw.Gostei,
		NaoGostei: raw.NaoGostei,
	}
	return nil
}

// idString accepts a JSON string or number and returns its text form.
func idString(raw json.RawMessage) (string, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return "", nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", err
		}
		return v, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// Stats holds the server-computed vote totals across every item.
// It is always reloaded, never derived from a local item list.
type Stats struct {
	TotalGostei    int `json:"totalGostei"`
	TotalNaoGostei int `json:"totalNaoGostei"`
}

type VoteType string

const (
	VoteLike    VoteType = "like"
	VoteDislike VoteType = "dislike"
)

func ParseVoteType(s string) (VoteType, error) {
	switch VoteType(strings.ToLower(strings.TrimSpace(s))) {
	case VoteLike:
		return VoteLike, nil
	case VoteDislike:
		return VoteDislike, nil
	}
	return "", fmt.Errorf("unknown vote type %q (want like or dislike)", s)
}

// VoteRequest is the body of POST /items/{id}/vote.
type VoteRequest struct {
	Type VoteType `json:"type"`
}

// Submission is a snapshot of the add-item form, already mapped onto the
// API's field names. CoverPath is a local file; empty means no cover.
type Submission struct {
	Titulo    string `validate:"required"`
	Genero    string `validate:"required"`
	Descricao string
	CoverPath string
}

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
)
