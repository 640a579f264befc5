package designsync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yacobolo/designsync/internal/apperr"
	"github.com/yacobolo/designsync/internal/mutate"
	"github.com/yacobolo/designsync/internal/sourceloc"
	"github.com/yacobolo/designsync/internal/utility"
)

// emptyTokenFile seeds a design-token file created by a request.
const emptyTokenFile = "{}\n"

// Apply validates req, rewrites the target file and reports the result. The
// file is only written when its content changes, and it is left untouched on
// any error. The scan cache is not refreshed; call Rescan to see the edit.
func (e *Engine) Apply(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if err := req.Validate(); err != nil {
		return Response{}, err
	}
	abs, err := e.root.Resolve(req.FilePath)
	if err != nil {
		return Response{}, err
	}

	unlock := e.locks.lock(abs)
	defer unlock()

	resp := Response{FilePath: req.FilePath, Identifier: req.Identifier, Kind: req.Kind}
	changed, err := e.root.Update(req.FilePath, req.Create && fileCreatable(req.Kind), func(text string) (string, error) {
		return e.rewrite(text, req, &resp)
	})
	if err != nil {
		e.logger.Warn("edit rejected",
			slog.String("file", req.FilePath),
			slog.String("kind", string(req.Kind)),
			slog.String("identifier", req.Identifier),
			slog.String("error", err.Error()),
		)
		return Response{}, err
	}

	resp.Success = true
	resp.Changed = changed
	e.logger.Info("edit applied",
		slog.String("file", req.FilePath),
		slog.String("kind", string(req.Kind)),
		slog.String("identifier", req.Identifier),
		slog.Bool("changed", changed),
	)
	return resp, nil
}

// fileCreatable reports kinds whose create variant may start a new file.
func fileCreatable(k Kind) bool {
	switch k {
	case KindCSSVariable, KindSassVariable, KindDesignToken, KindShadowToken:
		return true
	}
	return false
}

func (e *Engine) rewrite(text string, req Request, resp *Response) (string, error) {
	hints := sourceloc.Hints{Identifier: req.Identifier, Line: req.Line, Context: req.Context, EID: req.EID}

	switch req.Kind {
	case KindCSSVariable:
		selector := req.Selector
		if selector == "" {
			selector = DefaultSelector
		}
		if req.Create {
			return mutate.CreateBlockValue(text, selector, req.Identifier, req.Value)
		}
		return mutate.SetBlockValue(text, selector, req.Identifier, req.Value)

	case KindSassVariable:
		if req.Create {
			return mutate.AppendSassVariable(text, req.Identifier, req.Value)
		}
		return mutate.SetSassVariable(text, req.Identifier, req.Value)

	case KindDesignToken:
		v := mutate.TokenValue(req.Value)
		if req.Create {
			out, err := mutate.CreateTokenValue(seedTokens(text), req.Identifier, req.TokenType, v)
			return string(out), err
		}
		out, err := mutate.SetTokenValue([]byte(text), req.Identifier, v)
		return string(out), err

	case KindShadowToken:
		var (
			out      []byte
			stripped bool
			err      error
		)
		if req.Create {
			out, stripped, err = mutate.CreateShadowToken(seedTokens(text), req.Identifier, req.Value)
		} else {
			out, stripped, err = mutate.SetShadowToken([]byte(text), req.Identifier, req.Value)
		}
		resp.StrippedInset = stripped
		return string(out), err

	case KindClass:
		if req.Create {
			out, _, err := sourceloc.InsertClass(text, hints, req.Value)
			return out, err
		}
		// the class being replaced identifies the element
		out, _, err := sourceloc.ReplaceClassInstance(text, hints, req.Identifier, strings.TrimSpace(req.Value))
		return out, err

	case KindClassProperty:
		out, class, err := mutate.SetElementProperty(text, hints, req.Property, req.Value, req.Variant)
		resp.Class = class
		return out, err

	case KindComponentClass:
		return sourceloc.RewriteComponent(text, req.Identifier, req.Value, req.Context)
	}
	return "", apperr.InvalidRequest(fmt.Errorf("unknown kind %q", req.Kind))
}

// seedTokens returns the token document to insert into, starting an empty
// one for a new file.
func seedTokens(text string) []byte {
	if strings.TrimSpace(text) == "" {
		return []byte(emptyTokenFile)
	}
	return []byte(text)
}

// Marked is the result of marking an element.
type Marked struct {
	EID     string `json:"eid"`
	Line    int    `json:"line"`
	Changed bool   `json:"changed"`
}

// Mark pins the element identified by hints with a marker attribute so later
// requests can target it by EID. Marking an already marked element returns
// its existing EID.
func (e *Engine) Mark(ctx context.Context, file string, hints sourceloc.Hints) (Marked, error) {
	if err := ctx.Err(); err != nil {
		return Marked{}, err
	}
	abs, err := e.root.Resolve(file)
	if err != nil {
		return Marked{}, err
	}
	unlock := e.locks.lock(abs)
	defer unlock()

	var m Marked
	changed, err := e.root.Update(file, false, func(text string) (string, error) {
		out, eid, err := sourceloc.Mark(text, hints)
		if err != nil {
			return "", err
		}
		loc, err := sourceloc.FindMarked(out, eid)
		if err != nil {
			return "", err
		}
		m.EID, m.Line = eid, loc.Line
		return out, nil
	})
	if err != nil {
		return Marked{}, err
	}
	m.Changed = changed
	e.logger.Debug("element marked", slog.String("file", file), slog.String("eid", m.EID))
	return m, nil
}

// Unmark removes the marker attribute carrying eid.
func (e *Engine) Unmark(ctx context.Context, file, eid string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := e.root.Resolve(file)
	if err != nil {
		return err
	}
	unlock := e.locks.lock(abs)
	defer unlock()

	_, err = e.root.Update(file, false, func(text string) (string, error) {
		return sourceloc.Unmark(text, eid)
	})
	return err
}

// Element describes the class list of a located element.
type Element struct {
	File       string             `json:"file"`
	Line       int                `json:"line"`
	Column     int                `json:"column"`
	Classes    string             `json:"classes"`
	Properties []utility.Property `json:"properties"`
	Other      []string           `json:"other"`
	Source     string             `json:"source"` // the located line
}

// Inspect locates an element and parses its class list into properties.
func (e *Engine) Inspect(ctx context.Context, file string, hints sourceloc.Hints) (Element, error) {
	if err := ctx.Err(); err != nil {
		return Element{}, err
	}
	text, err := e.root.Read(file)
	if err != nil {
		return Element{}, err
	}
	loc, err := sourceloc.Locate(text, hints)
	if err != nil {
		return Element{}, err
	}
	attr, err := sourceloc.FindAttr(text, loc.Line)
	if err != nil {
		return Element{}, err
	}
	parsed := utility.ParseClasses(attr.Value)
	return Element{
		File:       file,
		Line:       loc.Line,
		Column:     loc.Column,
		Classes:    strings.Join(strings.Fields(attr.Value), " "),
		Properties: parsed.Properties,
		Other:      parsed.Other,
		Source:     strings.TrimRight(text[loc.LineStart:loc.LineEnd], "\r\n"),
	}, nil
}
