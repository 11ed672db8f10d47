package stub

import (
	"sync"
	"time"

	"afisha/internal/domain/entity"

	"github.com/google/uuid"
)

// account pairs a user with its stored credential hash.
type account struct {
	user         *entity.User
	passwordHash []byte
}

// state is the in-memory dataset behind the stub API. One mutex guards
// everything; the stub trades concurrency for simplicity.
type state struct {
	mu sync.Mutex

	cities     []*entity.City
	events     map[string]*entity.Event
	eventOrder []string
	businesses []*entity.Business
	promotions []*entity.Promotion
	comms      map[string]*entity.Community
	commOrder  []string
	collabs    map[string]*entity.Collaboration
	collabOrd  []string

	accounts map[string]*account // keyed by email
	byID     map[string]*entity.User

	// viewer-scoped relations
	favorites map[string]map[string]bool // userID -> eventID
	members   map[string]map[string]bool // userID -> communityID
	responses map[string]map[string]bool // userID -> collaborationID

	ownedBusiness map[string]string // userID -> businessID
}

func newState() *state {
	return &state{
		events:        map[string]*entity.Event{},
		comms:         map[string]*entity.Community{},
		collabs:       map[string]*entity.Collaboration{},
		accounts:      map[string]*account{},
		byID:          map[string]*entity.User{},
		favorites:     map[string]map[string]bool{},
		members:       map[string]map[string]bool{},
		responses:     map[string]map[string]bool{},
		ownedBusiness: map[string]string{},
	}
}

func (st *state) addAccount(user *entity.User, passwordHash []byte) {
	st.accounts[user.Email] = &account{user: user, passwordHash: passwordHash}
	st.byID[user.ID] = user
}

func (st *state) addEvent(event *entity.Event) {
	st.events[event.ID] = event
	st.eventOrder = append(st.eventOrder, event.ID)
}

func (st *state) addCommunity(community *entity.Community) {
	st.comms[community.ID] = community
	st.commOrder = append(st.commOrder, community.ID)
}

func (st *state) addCollaboration(collab *entity.Collaboration) {
	st.collabs[collab.ID] = collab
	st.collabOrd = append(st.collabOrd, collab.ID)
}

// eventView returns a copy of the event with the viewer-scoped flags set
// for userID; an empty userID means anonymous.
func (st *state) eventView(event *entity.Event, userID string) *entity.Event {
	view := *event
	view.IsFavorite = userID != "" && st.favorites[userID][event.ID]

	return &view
}

func (st *state) communityView(community *entity.Community, userID string) *entity.Community {
	view := *community
	view.IsMember = userID != "" && st.members[userID][community.ID]

	return &view
}

func (st *state) collabView(collab *entity.Collaboration, userID string) *entity.Collaboration {
	view := *collab
	view.HasResponded = userID != "" && st.responses[userID][collab.ID]

	return &view
}

func (st *state) businessOf(userID string) *entity.Business {
	businessID, ok := st.ownedBusiness[userID]
	if !ok {
		return nil
	}
	for _, business := range st.businesses {
		if business.ID == businessID {
			return business
		}
	}

	return nil
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func price(v float64) *float64 {
	return &v
}

// seed fills the state with the demo dataset used by development and the
// integration tests.
func seed(st *state, now time.Time, hash func(password string) []byte) {
	st.cities = []*entity.City{
		{ID: "city-almaty", Name: "Алматы", NameLocal: "Алматы", Slug: "almaty", Region: "Алматинская область", Population: 2180000},
		{ID: "city-astana", Name: "Астана", NameLocal: "Астана", Slug: "astana", Region: "Акмолинская область", Population: 1350000},
		{ID: "city-shymkent", Name: "Шымкент", NameLocal: "Шымкент", Slug: "shymkent", Region: "Туркестанская область", Population: 1200000},
	}

	aida := &entity.User{ID: "user-aida", Email: "aida@example.kz", Name: "Аида", Role: entity.RoleUser}
	daniyar := &entity.User{ID: "user-daniyar", Email: "daniyar@example.kz", Name: "Данияр", Role: entity.RoleBusiness}
	zarina := &entity.User{ID: "user-zarina", Email: "zarina@example.kz", Name: "Зарина", Role: entity.RoleBusiness}
	st.addAccount(aida, hash("secret123"))
	st.addAccount(daniyar, hash("secret123"))
	st.addAccount(zarina, hash("secret123"))

	st.businesses = []*entity.Business{
		{
			ID: "biz-dastarkhan", OwnerID: daniyar.ID, Name: "Дастархан",
			Description: "Ресторан казахской кухни", Category: "food",
			CitySlug: "almaty", Address: "пр. Абая 25", Phone: "+7 727 000 11 22",
			Tier: entity.TierPremium, IsVerified: true, PostsThisMonth: 4,
		},
		{
			ID: "biz-qonaq", OwnerID: zarina.ID, Name: "Qonaq House",
			Description: "Арт-пространство и коворкинг", Category: "culture",
			CitySlug: "astana", Address: "ул. Достык 9",
			Tier: entity.TierFree, IsVerified: false, PostsThisMonth: 3,
		},
	}
	st.ownedBusiness[daniyar.ID] = "biz-dastarkhan"
	st.ownedBusiness[zarina.ID] = "biz-qonaq"

	nextWeek := now.AddDate(0, 0, 7).Format("2006-01-02")
	nextMonth := now.AddDate(0, 1, 0).Format("2006-01-02")

	st.addEvent(&entity.Event{
		ID: "event-jazz", Title: "Вечер джаза", Description: "Живой концерт на террасе",
		Category: "concerts", Date: nextWeek, Time: "20:00",
		Location: "Дастархан", Address: "пр. Абая 25", CitySlug: "almaty",
		Price: price(5000), MaxPrice: price(12000),
		OrganizerID: "biz-dastarkhan", Organizer: "Дастархан",
		Tags: []string{"джаз", "живая музыка"}, ViewCount: 340, SaveCount: 41,
		IsFeatured: true, Status: entity.ModerationApproved,
	})
	st.addEvent(&entity.Event{
		ID: "event-yoga", Title: "Йога в парке", Description: "Бесплатное утреннее занятие",
		Category: "sport", Date: nextWeek, Time: "07:30",
		Location: "Парк Первого Президента", CitySlug: "almaty",
		OrganizerID: "biz-qonaq", Organizer: "Qonaq House",
		ViewCount: 120, SaveCount: 18, Status: entity.ModerationApproved,
	})
	st.addEvent(&entity.Event{
		ID: "event-lecture", Title: "Лекция о космосе", Description: "Открытая лекция астрофизика",
		Category: "education", Date: nextMonth, Time: "18:30",
		Location: "Qonaq House", Address: "ул. Достык 9", CitySlug: "astana",
		Price: price(2000), OrganizerID: "biz-qonaq", Organizer: "Qonaq House",
		ViewCount: 75, SaveCount: 9, Status: entity.ModerationApproved,
	})
	st.addEvent(&entity.Event{
		ID: "event-draft", Title: "Закрытая дегустация", Description: "Новое меню до официального запуска",
		Category: "food", Date: nextMonth, Time: "19:00",
		Location: "Дастархан", CitySlug: "almaty",
		Price: price(15000), OrganizerID: "biz-dastarkhan", Organizer: "Дастархан",
		Status: entity.ModerationPending,
	})

	st.promotions = []*entity.Promotion{
		{
			ID: "promo-lunch", BusinessID: "biz-dastarkhan", CitySlug: "almaty",
			Title: "Бизнес-ланч", Discount: "-30%", Conditions: "Будние дни с 12 до 15",
			ValidUntil: now.AddDate(0, 0, 14), ViewsCount: 210, IsActive: true,
		},
		{
			ID: "promo-expired", BusinessID: "biz-qonaq", CitySlug: "astana",
			Title: "Открытие сезона", Discount: "2+1",
			ValidUntil: now.AddDate(0, 0, -3), ViewsCount: 95, IsActive: false,
		},
	}

	st.addCommunity(&entity.Community{
		ID: "comm-runners", Name: "Бегуны Алматы", Description: "Совместные пробежки по выходным",
		CitySlug: "almaty", MembersCount: 128,
	})
	st.addCommunity(&entity.Community{
		ID: "comm-photo", Name: "Фотоклуб Астана", Description: "Фотопрогулки и разборы работ",
		CitySlug: "astana", MembersCount: 54,
	})

	st.addCollaboration(&entity.Collaboration{
		ID: "collab-festival", Title: "Ищем фуд-партнёра на фестиваль",
		Category: "food", Budget: price(500000), Status: entity.CollabOpen,
		ResponseCount: 2, CreatorID: "biz-qonaq", CreatorName: "Qonaq House",
	})
	st.addCollaboration(&entity.Collaboration{
		ID: "collab-closed", Title: "Совместная фотосессия меню",
		Category: "media", Status: entity.CollabClosed,
		ResponseCount: 5, CreatorID: "biz-dastarkhan", CreatorName: "Дастархан",
	})
}
