package client

// ApplicationInformation describes a pasty instance as reported by
// GET /api/v2/info.
type ApplicationInformation struct {
	// ModificationTokens is true when the instance issues modification tokens.
	ModificationTokens bool `json:"modificationTokens"`
	// PasteLifetime is the paste lifetime in seconds, -1 if pastes never expire.
	PasteLifetime int64  `json:"pasteLifetime"`
	Reports       bool   `json:"reports"`
	Version       string `json:"version"`
}

// PfEncryption is the encryption hint written by the pasty frontend for
// client-side encrypted pastes.
type PfEncryption struct {
	Alg string `json:"alg"`
	IV  string `json:"iv"`
}

// Metadata is optional data attached to a paste.
type Metadata struct {
	PfEncryption *PfEncryption `json:"pf_encryption,omitempty"`
}

// Paste is a stored paste. A Paste is a snapshot: read it again to observe
// later changes.
type Paste struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	// Created is the creation time in unix seconds.
	Created  int64     `json:"created"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// CreatedPaste is the result of creating a paste. The modification token is
// only ever returned here.
type CreatedPaste struct {
	Paste
	ModificationToken string `json:"modificationToken"`
}

type pasteRequest struct {
	Content  string    `json:"content"`
	Metadata *Metadata `json:"metadata,omitempty"`
}
