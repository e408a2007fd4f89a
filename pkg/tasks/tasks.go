// Package tasks talks to the background task runner over redis. A request is
// pushed onto the task's queue with a unique reply key; the runner pushes the
// result onto that key. Every call is bounded by the client timeout and by
// the caller's context.
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kleio/archive-api/pkg/iiif"
	"github.com/kleio/archive-api/pkg/item"
)

// Client runs tasks with a response over redis.
type Client struct {
	rdb     *redis.Client
	timeout time.Duration
}

func NewClient(addr string, timeout time.Duration) *Client {
	return &Client{
		rdb:     redis.NewClient(&redis.Options{Addr: addr}),
		timeout: timeout,
	}
}

type request struct {
	ID      string `json:"id"`
	ReplyTo string `json:"replyTo"`
	Params  any    `json:"params"`
}

type response struct {
	Error  string          `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// RunWithResponse queues the named task and waits for its result. The wait is
// bounded by the client timeout and cancelled with ctx.
func (c *Client) RunWithResponse(ctx context.Context, name string, params, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	id := uuid.NewString()
	replyKey := "tasks:reply:" + id

	body, err := json.Marshal(request{ID: id, ReplyTo: replyKey, Params: params})
	if err != nil {
		return fmt.Errorf("failed to marshal task request: %w", err)
	}

	if err := c.rdb.LPush(ctx, "tasks:"+name, body).Err(); err != nil {
		return fmt.Errorf("failed to queue task %s: %w", name, err)
	}

	reply, err := c.rdb.BRPop(ctx, c.timeout, replyKey).Result()
	if err != nil {
		return fmt.Errorf("no response for task %s: %w", name, err)
	}

	// BRPop yields [key, value].
	var resp response
	if err := json.Unmarshal([]byte(reply[1]), &resp); err != nil {
		return fmt.Errorf("malformed response for task %s: %w", name, err)
	}
	if resp.Error != "" {
		return fmt.Errorf("task %s failed: %s", name, resp.Error)
	}

	if out != nil && len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, out); err != nil {
			return fmt.Errorf("malformed result for task %s: %w", name, err)
		}
	}
	return nil
}

// IIIFMetadata is the computed descriptive metadata for a root item.
type IIIFMetadata struct {
	Homepage []iiif.Link         `json:"homepage,omitempty"`
	Metadata []item.MetadataPair `json:"metadata,omitempty"`
	SeeAlso  []iiif.Link         `json:"seeAlso,omitempty"`
}

type iiifMetadataParams struct {
	Item *item.Item `json:"item"`
}

// Enrich asks the task runner for the computed homepage, extra metadata and
// seeAlso values of a root item.
func (c *Client) Enrich(ctx context.Context, it *item.Item) (*IIIFMetadata, error) {
	var md IIIFMetadata
	if err := c.RunWithResponse(ctx, "iiif-metadata", iiifMetadataParams{Item: it}, &md); err != nil {
		return nil, err
	}
	return &md, nil
}
