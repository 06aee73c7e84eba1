package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jmylchreest/hexword/internal/cardcache"
	"github.com/jmylchreest/hexword/internal/colour"
	"github.com/jmylchreest/hexword/internal/frame"
	"github.com/jmylchreest/hexword/internal/namer"
	"github.com/jmylchreest/hexword/internal/render"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error"`
}

// ColorNameResponse is the body of a successful /api/color-name call.
type ColorNameResponse struct {
	Success   bool       `json:"success"`
	ColorName string     `json:"colorName"`
	Word      string     `json:"word"`
	HexColor  string     `json:"hexColor"`
	RGB       colour.RGB `json:"rgb"`
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	page, err := frame.LandingPage(frame.BaseURL(r), s.defaultWord)
	if err != nil {
		s.logger.Error("failed to render landing page", "error", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, page)
}

func (s *Server) handleFrameImage(w http.ResponseWriter, r *http.Request) {
	word := strings.TrimSpace(r.PathValue("word"))
	if word == "" {
		word = s.defaultWord
	}

	data, err := s.card(r.Context(), word)
	if err != nil {
		s.logger.Error("error generating image", "word", word, "error", err)
		http.Error(w, "Error generating image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

// card returns the PNG card for word, from the cache when one is configured.
// Cache failures are logged and fall through to rendering.
func (s *Server) card(ctx context.Context, word string) ([]byte, error) {
	var key string
	if s.cache != nil {
		key = cardcache.Key(word, s.mode)
		data, ok, err := s.cache.Get(key)
		switch {
		case err != nil:
			s.logger.Warn("card cache read failed", "word", word, "error", err)
		case ok:
			s.logger.Trace("card cache hit", "word", word)
			return data, nil
		}
	}

	res := colour.ColorFor(word, s.mode)
	name, _ := s.namer.Name(ctx, namer.RequestFor(res))

	data, err := s.renderer.PNG(render.CardFor(res, name))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(key, data); err != nil {
			s.logger.Warn("card cache write failed", "word", word, "error", err)
		}
	}
	return data, nil
}

func (s *Server) handleColorName(w http.ResponseWriter, r *http.Request) {
	word, err := readWord(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if word == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Word is required"})
		return
	}

	res := colour.ColorFor(word, s.mode)
	name, err := s.namer.Name(r.Context(), namer.RequestFor(res))
	if err != nil {
		s.logger.Error("error generating color name", "word", word, "error", err)
		failed := false
		writeJSON(w, http.StatusInternalServerError, errorResponse{Success: &failed, Error: "Failed to generate color name"})
		return
	}

	writeJSON(w, http.StatusOK, ColorNameResponse{
		Success:   true,
		ColorName: name,
		Word:      word,
		HexColor:  res.Hex,
		RGB:       res.RGB,
	})
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	var action frame.Action
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&action); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Error processing frame", http.StatusBadRequest)
		return
	}

	word, label := frame.Resolve(action, s.defaultWord, s.pick)
	res := colour.ColorFor(word, s.mode)

	s.logger.Debug("frame action",
		"fid", action.UntrustedData.FID,
		"button", action.UntrustedData.ButtonIndex,
		"action", label,
		"word", word,
		"hex", res.Hex,
	)

	page, err := frame.ResultPage(frame.BaseURL(r), res)
	if err != nil {
		s.logger.Error("frame error", "error", err)
		http.Error(w, "Error processing frame", http.StatusInternalServerError)
		return
	}
	writeHTML(w, page)
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	word := strings.TrimSpace(r.PathValue("word"))

	mode := s.mode
	if q := r.URL.Query().Get("mode"); q != "" {
		m, err := colour.ParseMode(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		mode = m
	}

	writeJSON(w, http.StatusOK, colour.ColorFor(word, mode))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readWord extracts the word field from a JSON or form encoded body.
func readWord(r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		var req struct {
			Word string `json:"word"`
		}
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimSpace(req.Word), nil
	}

	r.Body = io.NopCloser(io.LimitReader(r.Body, maxBodyBytes))
	if err := r.ParseForm(); err != nil {
		return "", err
	}
	return strings.TrimSpace(r.PostFormValue("word")), nil
}

func writeHTML(w http.ResponseWriter, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
