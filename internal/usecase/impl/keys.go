// Package impl contains the application-facing operation implementations.
package impl

import (
	"afisha/internal/cache"
	"afisha/internal/domain/service"
	"afisha/internal/session"
)

// Cache resource names. Viewer-scoped resources embed the viewer identity
// in the key so one user's flags can never leak into another session.
const (
	resourceCities      = "cities"
	resourceCity        = "city"
	resourceEvents      = "events"
	resourceEvent       = "event"
	resourceBusinesses  = "businesses"
	resourcePromotions  = "promotions"
	resourceCommunities = "communities"
	resourceCollabs     = "collaborations"
	resourceFavorites   = "favorites"
	resourceMe          = "me"
	resourceMyBusiness  = "my-business"
)

const anonymousViewer = "anonymous"

// viewerID identifies the current viewer for cache-key scoping.
func viewerID(sess *session.Store) string {
	if user := sess.Current(); user != nil {
		return user.ID
	}

	return anonymousViewer
}

func citiesKey() cache.Key {
	return cache.NewKey(resourceCities, nil)
}

func cityKey(slug string) cache.Key {
	return cache.NewKey(resourceCity, map[string]string{"slug": slug})
}

func eventsKey(viewer string, filter service.EventFilter) cache.Key {
	params := map[string]string{
		"viewer":   viewer,
		"cityId":   filter.CitySlug,
		"category": filter.Category,
	}
	if filter.Featured {
		params["featured"] = "true"
	}

	return cache.NewKey(resourceEvents, params)
}

func eventKey(viewer, id string) cache.Key {
	return cache.NewKey(resourceEvent, map[string]string{"viewer": viewer, "id": id})
}

func businessesKey(filter service.BusinessFilter) cache.Key {
	return cache.NewKey(resourceBusinesses, map[string]string{
		"cityId":   filter.CitySlug,
		"category": filter.Category,
	})
}

func promotionsKey(filter service.PromotionFilter) cache.Key {
	params := map[string]string{"cityId": filter.CitySlug}
	if filter.ActiveOnly {
		params["active"] = "true"
	}

	return cache.NewKey(resourcePromotions, params)
}

func communitiesKey(viewer string, filter service.CommunityFilter) cache.Key {
	return cache.NewKey(resourceCommunities, map[string]string{
		"viewer": viewer,
		"cityId": filter.CitySlug,
	})
}

func collaborationsKey(viewer string, filter service.CollaborationFilter) cache.Key {
	return cache.NewKey(resourceCollabs, map[string]string{
		"viewer":   viewer,
		"category": filter.Category,
		"status":   string(filter.Status),
	})
}

func favoriteKey(viewer, eventID string) cache.Key {
	return cache.NewKey(resourceFavorites, map[string]string{"viewer": viewer, "eventId": eventID})
}

func currentUserKey(viewer string) cache.Key {
	return cache.NewKey(resourceMe, map[string]string{"viewer": viewer})
}

func myBusinessKey(viewer string) cache.Key {
	return cache.NewKey(resourceMyBusiness, map[string]string{"viewer": viewer})
}
