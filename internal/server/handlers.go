package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tidwall/sjson"

	"github.com/pable/csinsights/internal/analysis"
	"github.com/pable/csinsights/internal/faceit"
)

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) requireKey(c echo.Context) bool {
	if s.faceit.HasKey() {
		return true
	}
	_ = c.JSON(http.StatusInternalServerError, errorBody{Error: faceit.ErrNoAPIKey.Error()})
	return false
}

func (s *Server) playerByNickname(c echo.Context) error {
	if !s.requireKey(c) {
		return nil
	}
	raw, err := s.faceit.PlayerByNickname(c.Request().Context(), c.Param("nickname"))
	if err != nil {
		return c.JSON(faceit.StatusCode(err), errorBody{Error: "FACEIT players lookup failed", Detail: err.Error()})
	}

	id := faceit.PlayerID(raw)
	if id == "" {
		return c.JSON(http.StatusNotFound, errorBody{Error: "Player not found"})
	}

	out, err := sjson.SetBytes([]byte(`{}`), "player_id", id)
	if err == nil {
		out, err = sjson.SetRawBytes(out, "raw", raw)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "FACEIT players lookup failed", Detail: err.Error()})
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (s *Server) playerMatches(c echo.Context) error {
	if !s.requireKey(c) {
		return nil
	}
	q := faceit.DefaultHistoryQuery
	if g := c.QueryParam("game"); g != "" {
		q.Game = g
	}
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		q.Limit = n
	}
	if n, err := strconv.Atoi(c.QueryParam("offset")); err == nil {
		q.Offset = n
	}

	raw, err := s.faceit.MatchHistory(c.Request().Context(), c.Param("playerId"), q)
	if err != nil {
		return c.JSON(faceit.StatusCode(err), errorBody{Error: "FACEIT history failed", Detail: err.Error()})
	}
	return c.JSON(http.StatusOK, faceit.HistoryItems(raw))
}

type analyzeRequest struct {
	Map any `json:"map"`
}

// bodyMap returns the map named in the request body. A missing, malformed
// or non-string value counts as absent.
func bodyMap(c echo.Context) *string {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, 1<<20))
	if err != nil || len(data) == 0 {
		return nil
	}
	var req analyzeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil
	}
	m, ok := req.Map.(string)
	if !ok || m == "" {
		return nil
	}
	return &m
}

func (s *Server) analyzeMatch(c echo.Context) error {
	matchID := c.Param("matchId")
	mapID := bodyMap(c)

	if mapID == nil && s.resolver != nil && s.faceit.HasKey() {
		name, err := s.resolver.ResolveMap(c.Request().Context(), matchID)
		if err != nil {
			s.logger.Debug("map resolution failed", "match_id", matchID, "err", err)
		} else {
			mapID = &name
		}
	}

	result, err := analysis.Generate(matchID, mapID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, analysis.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		return c.JSON(status, errorBody{Error: "Analyze failed", Detail: err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}
