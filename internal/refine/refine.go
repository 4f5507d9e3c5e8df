package refine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/video-notes/internal/apperr"
	"github.com/nguyentantai21042004/video-notes/internal/job"
)

const systemInstruction = "You are a helpful assistant designed to output JSON."

// Refine returns the cached result for the goal if a non-empty cache artifact
// exists; otherwise it chunks the content, issues one model call per chunk,
// merges valid replies in chunk order, and persists the merged result before
// returning it. A failing chunk contributes nothing rather than failing the
// whole goal.
func (r *implRefiner) Refine(ctx context.Context, dir job.Dir, goal Goal, content string) ([]json.RawMessage, error) {
	cachePath := dir.GoalCache(goal.Name)

	if cached, ok := readCache(cachePath); ok {
		r.logger.Info(ctx, "Goal %s already refined (%d entries), skipping", goal.Name, len(cached))
		return cached, nil
	}

	chunks := Chunk(content, goal.TokenBudget)
	r.logger.Info(ctx, "Refining goal %s in %d chunks", goal.Name, len(chunks))

	combined := []json.RawMessage{}
	for i, chunk := range chunks {
		r.logger.Info(ctx, "%s - processing chunk %d of %d", goal.Name, i+1, len(chunks))

		entries, err := r.processChunk(ctx, goal, chunk)
		if err != nil {
			// A single bad chunk must not fail the stage.
			r.logger.Error(ctx, "Chunk %d of goal %s degraded to empty: %v",
				i+1, goal.Name, &apperr.RefinementError{Goal: goal.Name, Err: err})
			continue
		}
		combined = append(combined, entries...)
	}

	// Persisting before returning is the durability boundary: a crash after
	// this write never recomputes the goal.
	data, err := json.Marshal(combined)
	if err != nil {
		return nil, fmt.Errorf("marshal %s result: %w", goal.Name, err)
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return nil, fmt.Errorf("write %s cache: %w", goal.Name, err)
	}

	return combined, nil
}

// processChunk issues a single model call with timeout and retry. Only
// timeouts are retried; other failures degrade immediately.
func (r *implRefiner) processChunk(ctx context.Context, goal Goal, chunk string) ([]json.RawMessage, error) {
	var reply string

	err := r.retry.Do(ctx, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
		defer cancel()

		var callErr error
		reply, callErr = r.client.Generate(callCtx, Request{
			Model:       r.model,
			System:      systemInstruction,
			Prompt:      fmt.Sprintf("%s\n\nHere is the content:\n%s.", goal.Prompt, chunk),
			Temperature: goal.Temperature,
		})
		return callErr
	}, isTimeout)
	if err != nil {
		return nil, err
	}

	entries := parseReply(reply)
	if len(entries) == 0 {
		return nil, errors.New("reply is not valid non-empty JSON")
	}
	return entries, nil
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// parseReply coerces a model reply into a slice of records. Array replies are
// used as-is, a single object becomes a one-element slice, anything else is
// treated as an empty contribution.
func parseReply(reply string) []json.RawMessage {
	raw := []byte(stripCodeFence(reply))

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err == nil {
		return compactNonNull(entries)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil && len(obj) > 0 {
		return []json.RawMessage{json.RawMessage(bytes.TrimSpace(raw))}
	}

	return nil
}

func compactNonNull(entries []json.RawMessage) []json.RawMessage {
	out := entries[:0]
	for _, e := range entries {
		trimmed := bytes.TrimSpace(e)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// stripCodeFence removes a surrounding ```json fence when the model wraps its
// reply in one.
func stripCodeFence(s string) string {
	trimmed := bytes.TrimSpace([]byte(s))
	if !bytes.HasPrefix(trimmed, []byte("```")) {
		return s
	}
	if idx := bytes.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = bytes.TrimSuffix(bytes.TrimSpace(trimmed), []byte("```"))
	return string(bytes.TrimSpace(trimmed))
}

func readCache(path string) ([]json.RawMessage, bool) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	var cached []json.RawMessage
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	// A cache holding only nulls is as useless as an empty one.
	cached = compactNonNull(cached)
	if len(cached) == 0 {
		return nil, false
	}
	return cached, true
}
