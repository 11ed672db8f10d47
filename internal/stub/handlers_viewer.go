package stub

import (
	"net/http"
	"strings"

	"afisha/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

type favoriteStateResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

func (s *Server) checkFavorite(c echo.Context) error {
	eventID := c.QueryParam("eventId")
	if eventID == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "eventId is required", "")
	}
	viewer := viewerOf(c)

	s.state.mu.Lock()
	favorite := s.state.favorites[viewer][eventID]
	s.state.mu.Unlock()

	return ok(c, favoriteStateResponse{IsFavorite: favorite})
}

type toggleFavoriteRequest struct {
	EventID string `json:"eventId"`
}

func (s *Server) toggleFavorite(c echo.Context) error {
	var req toggleFavoriteRequest
	if err := c.Bind(&req); err != nil || req.EventID == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "eventId is required", "")
	}
	viewer := viewerOf(c)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	event, found := s.state.events[req.EventID]
	if !found {
		return notFound(c, "event "+req.EventID)
	}

	if s.state.favorites[viewer] == nil {
		s.state.favorites[viewer] = map[string]bool{}
	}

	favorite := !s.state.favorites[viewer][req.EventID]
	s.state.favorites[viewer][req.EventID] = favorite
	if favorite {
		event.SaveCount++
	} else if event.SaveCount > 0 {
		event.SaveCount--
	}

	return ok(c, favoriteStateResponse{IsFavorite: favorite})
}

func (s *Server) listCommunities(c echo.Context) error {
	citySlug := c.QueryParam("cityId")
	viewer := viewerOf(c)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	communities := make([]*entity.Community, 0, len(s.state.commOrder))
	for _, id := range s.state.commOrder {
		community := s.state.comms[id]
		if citySlug != "" && community.CitySlug != citySlug {
			continue
		}
		communities = append(communities, s.state.communityView(community, viewer))
	}

	return ok(c, communities)
}

func (s *Server) joinCommunity(c echo.Context) error {
	return s.setMembership(c, true)
}

func (s *Server) leaveCommunity(c echo.Context) error {
	return s.setMembership(c, false)
}

func (s *Server) setMembership(c echo.Context, member bool) error {
	communityID := c.Param("id")
	viewer := viewerOf(c)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	community, found := s.state.comms[communityID]
	if !found {
		return notFound(c, "community "+communityID)
	}

	if s.state.members[viewer] == nil {
		s.state.members[viewer] = map[string]bool{}
	}

	// Joining twice or leaving twice is a no-op, not an error.
	if s.state.members[viewer][communityID] != member {
		s.state.members[viewer][communityID] = member
		if member {
			community.MembersCount++
		} else if community.MembersCount > 0 {
			community.MembersCount--
		}
	}

	return ok(c, s.state.communityView(community, viewer))
}

func (s *Server) listCollaborations(c echo.Context) error {
	category := c.QueryParam("category")
	status := c.QueryParam("status")
	viewer := viewerOf(c)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	collaborations := make([]*entity.Collaboration, 0, len(s.state.collabOrd))
	for _, id := range s.state.collabOrd {
		collab := s.state.collabs[id]
		if category != "" && collab.Category != category {
			continue
		}
		if status != "" && string(collab.Status) != status {
			continue
		}
		collaborations = append(collaborations, s.state.collabView(collab, viewer))
	}

	return ok(c, collaborations)
}

type respondRequest struct {
	Message string `json:"message"`
}

func (s *Server) respondToCollaboration(c echo.Context) error {
	collabID := c.Param("id")

	var req respondRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "message is required", "")
	}
	viewer := viewerOf(c)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	collab, found := s.state.collabs[collabID]
	if !found {
		return notFound(c, "collaboration "+collabID)
	}
	if !collab.AcceptsResponses() {
		return fail(c, http.StatusConflict, "VALIDATION_FAILED", "collaboration is closed", collabID)
	}

	if s.state.responses[viewer] == nil {
		s.state.responses[viewer] = map[string]bool{}
	}
	if !s.state.responses[viewer][collabID] {
		s.state.responses[viewer][collabID] = true
		collab.ResponseCount++
	}

	return ok(c, s.state.collabView(collab, viewer))
}
