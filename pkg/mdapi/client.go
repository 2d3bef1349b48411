package mdapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

type (
	// A Client defines all interactions that can be performed on a
	// remote markdown document store.
	Client interface {
		// Save creates a new document on the remote store.
		Save(title, content, tags string) Result
		// Load fetches the document for the given id.
		Load(id string) Result
		// List fetches up to limit document previews.
		List(limit int) Result
		// Update replaces the document for the given id.
		Update(id, title, content, tags string) Result
		// Delete removes the document for the given id.
		Delete(id string) Result
	}

	p      map[string]any
	client struct {
		http     *http.Client
		primary  string
		fallback string
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(primary, fallback string) (Client, error) {
	return NewClient(http.DefaultClient, primary, fallback)
}

// NewClient returns a new Client targeting primary with fallback as
// last resort.
func NewClient(c *http.Client, primary, fallback string) (Client, error) {
	if _, err := url.Parse(primary); err != nil {
		return nil, errors.Wrap(err, "could not parse primary endpoint")
	}
	if _, err := url.Parse(fallback); err != nil {
		return nil, errors.Wrap(err, "could not parse fallback endpoint")
	}
	return &client{http: c, primary: primary, fallback: fallback}, nil
}

func (c *client) Save(title, content, tags string) Result {
	body := p{
		"title":     title,
		"body":      content,
		"userId":    1,
		"tags":      tags,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
		"type":      DocumentType,
	}

	payload, err := c.perform(http.MethodPost, "/posts", nil, body)
	if err != nil {
		return failure("Failed to save document", err)
	}

	v, err := fastjson.ParseBytes(payload)
	if err != nil {
		return failure("Failed to save document", errors.Wrap(err, "could not parse response"))
	}

	return success("Document saved successfully", documentFromJSON(v))
}

func (c *client) Load(id string) Result {
	payload, err := c.perform(http.MethodGet, "/posts/"+id, nil, nil)
	if err != nil {
		return failure("Failed to load document", err)
	}

	v, err := fastjson.ParseBytes(payload)
	if err != nil {
		return failure("Failed to load document", errors.Wrap(err, "could not parse response"))
	}

	return success("Document loaded successfully", documentFromJSON(v))
}

func (c *client) List(limit int) Result {
	query := url.Values{}
	query.Set("_limit", strconv.Itoa(limit))

	payload, err := c.perform(http.MethodGet, "/posts", query, nil)
	if err != nil {
		return failure("Failed to list documents", err)
	}

	v, err := fastjson.ParseBytes(payload)
	if err != nil {
		return failure("Failed to list documents", errors.Wrap(err, "could not parse response"))
	}

	previews := make([]DocumentPreview, 0)
	for _, record := range records(v) {
		previews = append(previews, previewFromJSON(record))
	}

	return success("Documents retrieved successfully", previews)
}

func (c *client) Update(id, title, content, tags string) Result {
	body := p{
		"id":        id,
		"title":     title,
		"body":      content,
		"userId":    1,
		"tags":      tags,
		"updatedAt": time.Now().UTC().Format(time.RFC3339),
		"type":      DocumentType,
	}

	payload, err := c.perform(http.MethodPut, "/posts/"+id, nil, body)
	if err != nil {
		return failure("Failed to update document", err)
	}

	v, err := fastjson.ParseBytes(payload)
	if err != nil {
		return failure("Failed to update document", errors.Wrap(err, "could not parse response"))
	}

	return success("Document updated successfully", documentFromJSON(v))
}

func (c *client) Delete(id string) Result {
	_, err := c.perform(http.MethodDelete, "/posts/"+id, nil, nil)
	if err != nil {
		return failure("Failed to delete document", err)
	}

	return success("Document deleted successfully", nil)
}

// records normalizes a list response. Some stores answer with a plain
// sequence, some wrap it ({"posts": [...]}) and some return a single
// object, which is wrapped as a one-element sequence.
func records(v *fastjson.Value) []*fastjson.Value {
	switch v.Type() {
	case fastjson.TypeArray:
		return v.GetArray()
	case fastjson.TypeObject:
		if posts := v.Get("posts"); posts != nil && posts.Type() == fastjson.TypeArray {
			return posts.GetArray()
		}
		return []*fastjson.Value{v}
	}
	return nil
}

// perform runs the request against the primary endpoint and, on any
// failure, retries the identical request against the fallback endpoint.
// Both attempts failing yields an EndpointsUnavailableError.
func (c *client) perform(method, route string, query url.Values, body p) ([]byte, error) {
	payload, perr := c.attempt(c.primary, method, route, query, body)
	if perr == nil {
		return payload, nil
	}

	payload, ferr := c.attempt(c.fallback, method, route, query, body)
	if ferr == nil {
		return payload, nil
	}

	return nil, &EndpointsUnavailableError{Primary: perr, Fallback: ferr}
}

func (c *client) attempt(endpoint, method, route string, query url.Values, body p) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, route)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	//
	// Build request
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "could not serialize request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, u.String(), reader)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, parseRequestError(endpoint, res.Body, res.StatusCode)
	}

	//
	// Process response
	payload, err := io.ReadAll(res.Body)
	return payload, errors.Wrap(err, "could not read response")
}
