package dto

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// ReplaceNoteTagsRequest carries the submitted tag selection. TagIds is left
// untyped so an empty marker ("" or null) and malformed input reach the mapper.
type ReplaceNoteTagsRequest struct {
	NoteId uuid.UUID   `json:"-" validate:"required"`
	TagIds interface{} `json:"tag_ids"`

	// tagIdsSent records that the body named tag_ids, even as null.
	tagIdsSent bool
}

func (r *ReplaceNoteTagsRequest) UnmarshalJSON(data []byte) error {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	raw, ok := body["tag_ids"]
	r.tagIdsSent = ok
	r.TagIds = nil
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, &r.TagIds)
}

// Validate rejects a request that does not mention tag_ids at all. An
// explicit null or "" still clears the selection.
func (r ReplaceNoteTagsRequest) Validate() error {
	if !r.tagIdsSent && r.TagIds == nil {
		return errors.New("tag_ids is required")
	}
	return nil
}

type TagResponse struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type NoteTagsResponse struct {
	NoteId uuid.UUID     `json:"note_id"`
	TagIds []interface{} `json:"tag_ids"`
	Tags   []TagResponse `json:"tags"`
}
