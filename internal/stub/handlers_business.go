package stub

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"afisha/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

func (s *Server) myBusiness(c echo.Context) error {
	viewer := viewerOf(c)

	s.state.mu.Lock()
	business := s.state.businessOf(viewer)
	s.state.mu.Unlock()

	if business == nil {
		return notFound(c, "no business for user "+viewer)
	}

	return ok(c, business)
}

type eventDraftRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Address     string   `json:"address"`
	CitySlug    string   `json:"cityId"`
	Price       *float64 `json:"price"`
	MaxPrice    *float64 `json:"maxPrice"`
	Tags        []string `json:"tags"`
}

func (r *eventDraftRequest) validate() string {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return "title is required"
	case strings.TrimSpace(r.CitySlug) == "":
		return "cityId is required"
	case r.Date == "":
		return "date is required"
	default:
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			return "date must be YYYY-MM-DD"
		}

		return ""
	}
}

func (s *Server) createEvent(c echo.Context) error {
	var req eventDraftRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid payload", err.Error())
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", msg, "")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	business := s.state.businessOf(viewerOf(c))
	if business == nil {
		return fail(c, http.StatusForbidden, "BUSINESS_REQUIRED", "business account required", "")
	}
	if business.QuotaRemaining() <= 0 {
		return fail(c, http.StatusTooManyRequests, "QUOTA_EXCEEDED", "monthly post quota exhausted",
			fmt.Sprintf("tier %s allows %d posts", business.Tier, business.Tier.PostQuota()))
	}

	event := &entity.Event{
		ID:          newID("event"),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Address:     req.Address,
		CitySlug:    req.CitySlug,
		Price:       req.Price,
		MaxPrice:    req.MaxPrice,
		Tags:        req.Tags,
		OrganizerID: business.ID,
		Organizer:   business.Name,
		Status:      entity.ModerationPending,
	}
	s.state.addEvent(event)
	business.PostsThisMonth++

	return created(c, event)
}

func (s *Server) updateEvent(c echo.Context) error {
	eventID := c.Param("id")

	var req eventDraftRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid payload", err.Error())
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", msg, "")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	business := s.state.businessOf(viewerOf(c))
	event, found := s.state.events[eventID]
	if !found {
		return notFound(c, "event "+eventID)
	}
	if business == nil || event.OrganizerID != business.ID {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "event belongs to another business", "")
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Category = req.Category
	event.Image = req.Image
	event.Date = req.Date
	event.Time = req.Time
	event.Location = req.Location
	event.Address = req.Address
	event.CitySlug = req.CitySlug
	event.Price = req.Price
	event.MaxPrice = req.MaxPrice
	event.Tags = req.Tags
	// Edits go back through moderation.
	event.Status = entity.ModerationPending

	return ok(c, event)
}

func (s *Server) deleteEvent(c echo.Context) error {
	eventID := c.Param("id")

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	business := s.state.businessOf(viewerOf(c))
	event, found := s.state.events[eventID]
	if !found {
		return notFound(c, "event "+eventID)
	}
	if business == nil || event.OrganizerID != business.ID {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "event belongs to another business", "")
	}

	delete(s.state.events, eventID)
	for i, id := range s.state.eventOrder {
		if id == eventID {
			s.state.eventOrder = append(s.state.eventOrder[:i], s.state.eventOrder[i+1:]...)

			break
		}
	}

	return ok(c, nil)
}

type promotionDraftRequest struct {
	Title      string `json:"title"`
	Discount   string `json:"discount"`
	Conditions string `json:"conditions"`
	ValidUntil string `json:"validUntil"`
}

func (s *Server) createPromotion(c echo.Context) error {
	var req promotionDraftRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid payload", err.Error())
	}

	validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
	if err != nil || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Discount) == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "title, discount and validUntil are required", "")
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	business := s.state.businessOf(viewerOf(c))
	if business == nil {
		return fail(c, http.StatusForbidden, "BUSINESS_REQUIRED", "business account required", "")
	}
	if business.QuotaRemaining() <= 0 {
		return fail(c, http.StatusTooManyRequests, "QUOTA_EXCEEDED", "monthly post quota exhausted", "")
	}

	promotion := &entity.Promotion{
		ID:         newID("promo"),
		BusinessID: business.ID,
		CitySlug:   business.CitySlug,
		Title:      req.Title,
		Discount:   req.Discount,
		Conditions: req.Conditions,
		ValidUntil: validUntil,
		IsActive:   true,
	}
	s.state.promotions = append(s.state.promotions, promotion)
	business.PostsThisMonth++

	return created(c, promotion)
}

type uploadConfigResponse struct {
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
	Folder    string `json:"folder"`
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
}

// uploadConfig signs a folder-scoped upload the way the image host expects:
// the signature covers the folder and timestamp with the API secret.
func (s *Server) uploadConfig(c echo.Context) error {
	if !s.upload.Configured() {
		return fail(c, http.StatusServiceUnavailable, "UPLOAD_NOT_CONFIGURED", "upload provider not configured", "")
	}

	folder := c.QueryParam("folder")
	if folder == "" {
		folder = "misc"
	}
	if s.upload.BaseFolder != "" {
		folder = s.upload.BaseFolder + "/" + folder
	}

	timestamp := time.Now().Unix()
	payload := fmt.Sprintf("folder=%s&timestamp=%d%s", folder, timestamp, s.upload.APISecret)
	digest := sha1.Sum([]byte(payload))

	return ok(c, uploadConfigResponse{
		CloudName: s.upload.CloudName,
		APIKey:    s.upload.APIKey,
		Folder:    folder,
		Signature: hex.EncodeToString(digest[:]),
		Timestamp: timestamp,
	})
}

type imageIdeasRequest struct {
	Prompt string `json:"prompt"`
}

type imageIdeasResponse struct {
	Ideas []string `json:"ideas"`
}

func (s *Server) imageIdeas(c echo.Context) error {
	var req imageIdeasRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "prompt is required", "")
	}

	s.state.mu.Lock()
	business := s.state.businessOf(viewerOf(c))
	s.state.mu.Unlock()

	if business == nil {
		return fail(c, http.StatusForbidden, "BUSINESS_REQUIRED", "business account required", "")
	}
	if !business.Tier.AllowsAIAssist() {
		return fail(c, http.StatusForbidden, "PREMIUM_REQUIRED", "premium tier required", string(business.Tier))
	}
	if !s.assist.Configured() {
		return fail(c, http.StatusServiceUnavailable, "ASSIST_NOT_CONFIGURED", "assist provider not configured", "")
	}

	prompt := strings.TrimSpace(req.Prompt)

	return ok(c, imageIdeasResponse{Ideas: []string{
		"Крупный план: " + prompt + ", тёплый вечерний свет",
		"Широкий кадр: " + prompt + " на фоне городского пейзажа",
		"Атмосферная деталь: " + prompt + ", неоновая подсветка",
	}})
}
