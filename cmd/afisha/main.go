package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"afisha/internal/domain/entity"
	"afisha/internal/domain/service"
	"afisha/internal/usecase"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - cities, city:         city catalog and selected city
// - events, event:        event catalog
// - businesses:           business directory
// - promotions:           promotion catalog
// - communities, join, leave
// - collabs, respond:     collaboration board
// - login, register, logout, whoami
// - favorite:             toggle a saved event
// - publish, promote:     business publications
// - ideas:                AI image ideas for a draft
// - share:                event share link and QR code

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	application, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runSubcommand(ctx, application, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSubcommand(ctx context.Context, a *app, name string, args []string) error {
	err := a.dispatch(ctx, name, args)
	if a.auth.HandleAuthFailure(err) {
		fmt.Fprintln(os.Stderr, "Сессия истекла, войдите снова")
	}

	return err
}

func (a *app) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "cities":
		return a.runCities(ctx)
	case "city":
		return a.runSelectCity(ctx, args)
	case "events":
		return a.runEvents(ctx, args)
	case "event":
		return a.runEvent(ctx, args)
	case "businesses":
		return a.runBusinesses(ctx, args)
	case "promotions":
		return a.runPromotions(ctx, args)
	case "communities":
		return a.runCommunities(ctx, args)
	case "join":
		return a.runMembership(ctx, args, true)
	case "leave":
		return a.runMembership(ctx, args, false)
	case "collabs":
		return a.runCollaborations(ctx, args)
	case "respond":
		return a.runRespond(ctx, args)
	case "login":
		return a.runLogin(ctx, args)
	case "register":
		return a.runRegister(ctx, args)
	case "logout":
		return a.runLogout(ctx)
	case "whoami":
		return a.runWhoami()
	case "favorite":
		return a.runFavorite(ctx, args)
	case "publish":
		return a.runPublish(ctx, args)
	case "promote":
		return a.runPromote(ctx, args)
	case "upload-config":
		return a.runUploadConfig(ctx, args)
	case "ideas":
		return a.runIdeas(ctx, args)
	case "share":
		return a.runShare(args)
	default:
		printUsage()

		return errors.Errorf("unknown subcommand %q", name)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: afisha <subcommand> [flags]

Catalog:
  cities                         List cities
  city -slug <slug>              Select the active city
  events [-city] [-category] [-featured] [-refresh]
  event -id <id>                 Show one event
  businesses [-city] [-category]
  promotions [-city] [-active]

Account:
  login -email <e> -password <p>
  register -email <e> -password <p> -name <n> [-role user|business]
  logout
  whoami

Viewer:
  favorite -event <id>           Toggle a saved event
  communities [-city]
  join -community <id>
  leave -community <id>
  collabs [-category] [-status]
  respond -collab <id> -message <text>

Business:
  publish -title <t> -description <d> -category <c> -date <YYYY-MM-DD> -time <HH:MM> -location <l> -city <slug> [-price] [-max-price]
  promote -title <t> -discount <d> -until <YYYY-MM-DD> [-conditions]
  upload-config [-folder <name>]
  ideas -prompt <text>
  share -event <id> [-out <file.png>]`)
}

func (a *app) runCities(ctx context.Context) error {
	cities, err := a.catalog.Cities(ctx)
	if err != nil {
		return err
	}

	selected := a.session.SelectedCity()
	for _, city := range cities {
		marker := " "
		if city.Slug == selected {
			marker = "*"
		}
		fmt.Printf("%s %-12s %s (%s)\n", marker, city.Slug, city.Name, city.Region)
	}

	return nil
}

func (a *app) runSelectCity(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("city", flag.ExitOnError)
	slug := cmd.String("slug", "", "City slug to select")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *slug == "" {
		return errors.New("-slug is required")
	}

	city, err := a.catalog.CityBySlug(ctx, *slug)
	if err != nil {
		return err
	}
	if err := a.session.SetSelectedCity(city.Slug); err != nil {
		return err
	}
	fmt.Printf("Выбран город: %s\n", city.Name)

	return nil
}

func (a *app) runEvents(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("events", flag.ExitOnError)
	city := cmd.String("city", "", "Filter by city slug (default: selected city)")
	category := cmd.String("category", "", "Filter by category")
	featured := cmd.Bool("featured", false, "Featured events only")
	refresh := cmd.Bool("refresh", false, "Bypass the cache")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	filter := service.EventFilter{CitySlug: *city, Category: *category, Featured: *featured}
	if filter.CitySlug == "" {
		filter.CitySlug = a.session.SelectedCity()
	}

	var (
		events []*entity.Event
		err    error
	)
	if *refresh {
		events, err = a.catalog.RefreshEvents(ctx, filter)
	} else {
		events, err = a.catalog.Events(ctx, filter)
	}
	if err != nil {
		return err
	}

	for _, event := range events {
		printEvent(event)
	}

	return nil
}

func printEvent(event *entity.Event) {
	favorite := " "
	if event.IsFavorite {
		favorite = "♥"
	}
	fmt.Printf("%s %-14s %s — %s %s, %s (%s)\n",
		favorite, event.ID, event.Title, event.Date, event.Time, event.Location, event.FormatPrice())
}

func (a *app) runEvent(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("event", flag.ExitOnError)
	id := cmd.String("id", "", "Event ID")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	event, err := a.catalog.EventByID(ctx, *id)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n\n%s %s, %s\n%s\nОрганизатор: %s\nПросмотры: %d  Сохранения: %d\n",
		event.Title, event.Description, event.Date, event.Time, event.Location,
		event.FormatPrice(), event.Organizer, event.ViewCount, event.SaveCount)
	fmt.Printf("Ссылка: %s\n", a.share.EventShareURL(event.ID))

	return nil
}

func (a *app) runBusinesses(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("businesses", flag.ExitOnError)
	city := cmd.String("city", "", "Filter by city slug")
	category := cmd.String("category", "", "Filter by category")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	businesses, err := a.catalog.Businesses(ctx, service.BusinessFilter{CitySlug: *city, Category: *category})
	if err != nil {
		return err
	}

	for _, business := range businesses {
		verified := " "
		if business.IsVerified {
			verified = "✓"
		}
		fmt.Printf("%s %-16s %s [%s] %s\n", verified, business.ID, business.Name, business.Tier, business.Address)
	}

	return nil
}

func (a *app) runPromotions(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("promotions", flag.ExitOnError)
	city := cmd.String("city", "", "Filter by city slug")
	active := cmd.Bool("active", true, "Active promotions only")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	promotions, err := a.catalog.Promotions(ctx, service.PromotionFilter{CitySlug: *city, ActiveOnly: *active})
	if err != nil {
		return err
	}

	now := time.Now()
	for _, promotion := range promotions {
		note := ""
		if promotion.ExpiresSoon(now) {
			note = " (скоро закончится)"
		}
		fmt.Printf("%-14s %s %s — до %s%s\n",
			promotion.ID, promotion.Title, promotion.Discount,
			promotion.ValidUntil.Format("2006-01-02"), note)
	}

	return nil
}

func (a *app) runCommunities(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("communities", flag.ExitOnError)
	city := cmd.String("city", "", "Filter by city slug")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	communities, err := a.comms.Communities(ctx, service.CommunityFilter{CitySlug: *city})
	if err != nil {
		return err
	}

	for _, community := range communities {
		member := " "
		if community.IsMember {
			member = "✓"
		}
		fmt.Printf("%s %-14s %s (%d участников)\n", member, community.ID, community.Name, community.MembersCount)
	}

	return nil
}

func (a *app) runMembership(ctx context.Context, args []string, join bool) error {
	name := "leave"
	if join {
		name = "join"
	}
	cmd := flag.NewFlagSet(name, flag.ExitOnError)
	communityID := cmd.String("community", "", "Community ID")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *communityID == "" {
		return errors.New("-community is required")
	}

	var (
		community *entity.Community
		err       error
	)
	if join {
		community, err = a.comms.Join(ctx, *communityID)
	} else {
		community, err = a.comms.Leave(ctx, *communityID)
	}
	if err != nil {
		return err
	}

	if join {
		fmt.Printf("Вы вступили в «%s»\n", community.Name)
	} else {
		fmt.Printf("Вы покинули «%s»\n", community.Name)
	}

	return nil
}

func (a *app) runCollaborations(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("collabs", flag.ExitOnError)
	category := cmd.String("category", "", "Filter by category")
	status := cmd.String("status", "", "Filter by status (open, in_progress, closed)")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	collaborations, err := a.collabs.Collaborations(ctx, service.CollaborationFilter{
		Category: *category,
		Status:   entity.CollabStatus(*status),
	})
	if err != nil {
		return err
	}

	for _, collab := range collaborations {
		responded := " "
		if collab.HasResponded {
			responded = "✓"
		}
		budget := "договорная"
		if collab.Budget != nil {
			budget = fmt.Sprintf("%.0f ₸", *collab.Budget)
		}
		fmt.Printf("%s %-16s [%s] %s — %s, откликов: %d\n",
			responded, collab.ID, collab.Status, collab.Title, budget, collab.ResponseCount)
	}

	return nil
}

func (a *app) runRespond(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("respond", flag.ExitOnError)
	collabID := cmd.String("collab", "", "Collaboration ID")
	message := cmd.String("message", "", "Response message")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	updated, err := a.collabs.Respond(ctx, &usecase.RespondInput{
		CollaborationID: *collabID,
		Message:         *message,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Отклик отправлен: «%s», всего откликов: %d\n", updated.Title, updated.ResponseCount)

	return nil
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := cmd.String("email", "", "Account email")
	password := cmd.String("password", "", "Account password")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, &usecase.LoginInput{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("Добро пожаловать, %s!\n", user.Name)

	return nil
}

func (a *app) runRegister(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("register", flag.ExitOnError)
	email := cmd.String("email", "", "Account email")
	password := cmd.String("password", "", "Account password")
	name := cmd.String("name", "", "Display name")
	role := cmd.String("role", "user", "Account role (user or business)")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, &usecase.RegisterInput{
		Email:    *email,
		Password: *password,
		Name:     *name,
		Role:     *role,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Аккаунт создан. Добро пожаловать, %s!\n", user.Name)

	return nil
}

func (a *app) runLogout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Вы вышли из аккаунта")

	return nil
}

func (a *app) runWhoami() error {
	user := a.auth.CurrentUser()
	if user == nil {
		fmt.Println("Вы не вошли в аккаунт")

		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)

	return nil
}

func (a *app) runFavorite(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("favorite", flag.ExitOnError)
	eventID := cmd.String("event", "", "Event ID")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *eventID == "" {
		return errors.New("-event is required")
	}

	favorite, err := a.favorite.Toggle(ctx, *eventID)
	if err != nil {
		return err
	}

	if favorite {
		fmt.Println("Добавлено в избранное")
	} else {
		fmt.Println("Удалено из избранного")
	}

	return nil
}

func (a *app) runPublish(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("publish", flag.ExitOnError)
	title := cmd.String("title", "", "Event title")
	description := cmd.String("description", "", "Event description")
	category := cmd.String("category", "", "Event category")
	date := cmd.String("date", "", "Event date (YYYY-MM-DD)")
	timeOfDay := cmd.String("time", "", "Start time (HH:MM)")
	location := cmd.String("location", "", "Venue name")
	city := cmd.String("city", "", "City slug")
	price := cmd.Float64("price", 0, "Ticket price in tenge (0 = free)")
	maxPrice := cmd.Float64("max-price", 0, "Upper bound of the price range")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	input := &usecase.PublishEventInput{
		Title:       *title,
		Description: *description,
		Category:    *category,
		Date:        *date,
		Time:        *timeOfDay,
		Location:    *location,
		CitySlug:    *city,
	}
	if *price > 0 {
		input.Price = price
	}
	if *maxPrice > 0 {
		input.MaxPrice = maxPrice
	}

	event, err := a.publish.CreateEvent(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("Событие «%s» отправлено на модерацию (id %s)\n", event.Title, event.ID)

	return nil
}

func (a *app) runPromote(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("promote", flag.ExitOnError)
	title := cmd.String("title", "", "Promotion title")
	discount := cmd.String("discount", "", "Discount, e.g. -30% or 2+1")
	until := cmd.String("until", "", "Valid until (YYYY-MM-DD)")
	conditions := cmd.String("conditions", "", "Conditions")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	promotion, err := a.publish.CreatePromotion(ctx, &usecase.PublishPromotionInput{
		Title:      *title,
		Discount:   *discount,
		Conditions: *conditions,
		ValidUntil: *until,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Акция «%s» опубликована (id %s)\n", promotion.Title, promotion.ID)

	return nil
}

func (a *app) runUploadConfig(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("upload-config", flag.ExitOnError)
	folder := cmd.String("folder", "", "Destination folder, e.g. events or businesses")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	cfg, err := a.upload.UploadConfig(ctx, *folder)
	if err != nil {
		return err
	}

	fmt.Printf("cloud:     %s\napi key:   %s\nfolder:    %s\ntimestamp: %d\nsignature: %s\n",
		cfg.CloudName, cfg.APIKey, cfg.Folder, cfg.Timestamp, cfg.Signature)

	return nil
}

func (a *app) runIdeas(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("ideas", flag.ExitOnError)
	prompt := cmd.String("prompt", "", "Describe the event for image ideas")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *prompt == "" {
		return errors.New("-prompt is required")
	}

	ideas, err := a.assist.ImageIdeas(ctx, *prompt)
	if err != nil {
		return err
	}

	for i, idea := range ideas {
		fmt.Printf("%d. %s\n", i+1, idea)
	}

	return nil
}

func (a *app) runShare(args []string) error {
	cmd := flag.NewFlagSet("share", flag.ExitOnError)
	eventID := cmd.String("event", "", "Event ID")
	out := cmd.String("out", "", "Write a QR code PNG to this file")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *eventID == "" {
		return errors.New("-event is required")
	}

	fmt.Println(a.share.EventShareURL(*eventID))

	if *out != "" {
		png, err := a.share.EventShareQR(*eventID)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*out, png, 0o644); err != nil {
			return errors.Wrap(err, "failed to write QR code")
		}
		fmt.Printf("QR-код сохранён в %s\n", *out)
	}

	return nil
}
