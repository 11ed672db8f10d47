package stub

import (
	"time"

	"afisha/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func (s *Server) listCities(c echo.Context) error {
	s.state.mu.Lock()
	cities := make([]*entity.City, len(s.state.cities))
	copy(cities, s.state.cities)
	s.state.mu.Unlock()

	return ok(c, cities)
}

func (s *Server) getCity(c echo.Context) error {
	slug := c.Param("slug")

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	for _, city := range s.state.cities {
		if city.Slug == slug {
			return ok(c, city)
		}
	}

	return notFound(c, "city "+slug)
}

// listEvents serves only approved events, filtered and decorated with the
// viewer's favorite flags.
func (s *Server) listEvents(c echo.Context) error {
	citySlug := c.QueryParam("cityId")
	category := c.QueryParam("category")
	featured := c.QueryParam("featured") == "true"
	viewer := viewerOf(c)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	events := make([]*entity.Event, 0, len(s.state.eventOrder))
	for _, id := range s.state.eventOrder {
		event := s.state.events[id]
		if !event.Status.Public() {
			continue
		}
		if citySlug != "" && event.CitySlug != citySlug {
			continue
		}
		if category != "" && event.Category != category {
			continue
		}
		if featured && !event.IsFeatured {
			continue
		}
		events = append(events, s.state.eventView(event, viewer))
	}

	return ok(c, events)
}

func (s *Server) getEvent(c echo.Context) error {
	id := c.Param("id")
	viewer := viewerOf(c)

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	event, found := s.state.events[id]
	if !found {
		return notFound(c, "event "+id)
	}

	// Detail reads count as views.
	event.ViewCount++

	return ok(c, s.state.eventView(event, viewer))
}

func (s *Server) listBusinesses(c echo.Context) error {
	citySlug := c.QueryParam("cityId")
	category := c.QueryParam("category")

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	businesses := make([]*entity.Business, 0, len(s.state.businesses))
	for _, business := range s.state.businesses {
		if citySlug != "" && business.CitySlug != citySlug {
			continue
		}
		if category != "" && business.Category != category {
			continue
		}
		businesses = append(businesses, business)
	}

	return ok(c, businesses)
}

func (s *Server) listPromotions(c echo.Context) error {
	citySlug := c.QueryParam("cityId")
	activeOnly := c.QueryParam("active") == "true"
	now := time.Now()

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	promotions := make([]*entity.Promotion, 0, len(s.state.promotions))
	for _, promotion := range s.state.promotions {
		if citySlug != "" && promotion.CitySlug != citySlug {
			continue
		}
		if activeOnly && (promotion.Expired(now) || !promotion.IsActive) {
			continue
		}
		promotions = append(promotions, promotion)
	}

	return ok(c, promotions)
}
