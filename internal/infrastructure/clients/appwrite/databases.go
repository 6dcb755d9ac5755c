package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Databases is the document CRUD sub-client
type Databases struct {
	client *Client
}

// Document is a stored document. The store returns its own metadata fields
// alongside the caller's attributes; Data carries the full body so callers can
// unmarshal their own payload type from it.
type Document struct {
	ID          string    `json:"$id"`
	CreatedAt   time.Time `json:"$createdAt"`
	UpdatedAt   time.Time `json:"$updatedAt"`
	Permissions []string  `json:"$permissions"`
	Data        json.RawMessage
}

// UnmarshalJSON keeps the raw body around for payload decoding
func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	if err := json.Unmarshal(data, (*alias)(d)); err != nil {
		return err
	}
	d.Data = append(d.Data[:0], data...)
	return nil
}

// DocumentList is the result of a list-documents call
type DocumentList struct {
	Total     int        `json:"total"`
	Documents []Document `json:"documents"`
}

type createDocumentRequest struct {
	DocumentID  string      `json:"documentId"`
	Data        interface{} `json:"data"`
	Permissions []string    `json:"permissions,omitempty"`
}

type updateDocumentRequest struct {
	Data interface{} `json:"data"`
}

// CreateDocument creates a document with the given id, payload, and
// per-document permission grants.
func (d *Databases) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data interface{}, permissions []string) (*Document, error) {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents", databaseID, collectionID)
	body := createDocumentRequest{
		DocumentID:  documentID,
		Data:        data,
		Permissions: permissions,
	}

	doc := &Document{}
	if err := d.client.doJSON(ctx, http.MethodPost, path, body, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateDocument partially updates a document; only the attributes present in
// data change.
func (d *Databases) UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data interface{}) (*Document, error) {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents/%s", databaseID, collectionID, documentID)

	doc := &Document{}
	if err := d.client.doJSON(ctx, http.MethodPatch, path, updateDocumentRequest{Data: data}, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteDocument hard-deletes a document
func (d *Databases) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents/%s", databaseID, collectionID, documentID)
	return d.client.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// ListDocuments lists documents matching the given queries (see query.go for
// the query builders).
func (d *Databases) ListDocuments(ctx context.Context, databaseID, collectionID string, queries []string) (*DocumentList, error) {
	path := fmt.Sprintf("/databases/%s/collections/%s/documents", databaseID, collectionID)
	if len(queries) > 0 {
		params := url.Values{}
		for _, q := range queries {
			params.Add("queries[]", q)
		}
		path = path + "?" + params.Encode()
	}

	list := &DocumentList{}
	if err := d.client.doJSON(ctx, http.MethodGet, path, nil, list); err != nil {
		return nil, err
	}
	return list, nil
}
