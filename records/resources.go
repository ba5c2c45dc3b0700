package records

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// Item is one reshaped record in a proxy listing. SortKey exposes the
// domain-appropriate date used for ordering.
type Item interface {
	SortKey() time.Time
}

// Resource binds one proxy endpoint to its upstream collection: how records
// are reshaped, whether publication state gates them, and how listings are
// ordered.
type Resource struct {
	// Name is the route segment and the key of the response envelope.
	Name string
	// Reshape converts one raw record into its stable output shape.
	Reshape func(Record) (Item, error)
	// PublishField names the publication-state field, empty if the
	// collection has none.
	PublishField string
	// HasPeriods exposes the /years listing for this resource.
	HasPeriods bool
	// FuturePast orders listings as upcoming-soonest-first followed by
	// past-newest-first instead of plain newest-first.
	FuturePast bool
}

// Resources lists every collection served by the authenticated proxy.
var Resources = []Resource{
	{Name: "announcements", Reshape: announcementFromRecord, PublishField: "publish", HasPeriods: true},
	{Name: "minutes", Reshape: minuteFromRecord, PublishField: "publish"},
	{Name: "circulars", Reshape: circularFromRecord, PublishField: "publish"},
	{Name: "applications", Reshape: applicationFromRecord},
	{Name: "wellness", Reshape: wellnessFileFromRecord, PublishField: "publish"},
	{Name: "events", Reshape: eventFromRecord, PublishField: "publish", FuturePast: true},
}

// ReshapeAll filters and reshapes an upstream listing. Unpublished records are
// dropped, and a record that fails reshaping is skipped rather than failing
// the whole response.
func (res Resource) ReshapeAll(raw []Record) []Item {
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		if res.PublishField != "" && !r.Published(res.PublishField) {
			continue
		}
		item, err := res.Reshape(r)
		if err != nil {
			log.Warn().Err(err).Str("resource", res.Name).Str("record", r.ID()).Msg("skipping malformed record")
			continue
		}
		items = append(items, item)
	}
	return items
}

// Sort orders a reshaped listing in place using the resource's ordering rule,
// evaluated against now.
func (res Resource) Sort(items []Item, now time.Time) {
	if !res.FuturePast {
		sortNewestFirst(items)
		return
	}

	now = dayOf(now)
	var future, past []Item
	for _, it := range items {
		if it.SortKey().Before(now) {
			past = append(past, it)
		} else {
			future = append(future, it)
		}
	}
	sort.SliceStable(future, func(i, j int) bool {
		return future[i].SortKey().Before(future[j].SortKey())
	})
	sortNewestFirst(past)
	copy(items, append(future, past...))
}

func sortNewestFirst(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SortKey().After(items[j].SortKey())
	})
}

// Announcement is a co-op notice with optional attachments.
type Announcement struct {
	RecordID    string       `json:"id"`
	Title       string       `json:"title"`
	Date        string       `json:"date"`
	Category    string       `json:"category,omitempty"`
	Body        string       `json:"body,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`

	date time.Time
}

func (a Announcement) SortKey() time.Time { return a.date }

func announcementFromRecord(r Record) (Item, error) {
	title, err := r.RequireString("title")
	if err != nil {
		return nil, err
	}
	date, err := r.Date("date")
	if err != nil {
		return nil, err
	}
	return Announcement{
		RecordID:    r.ID(),
		Title:       title,
		Date:        r.String("date"),
		Category:    r.String("category"),
		Body:        r.String("body"),
		Attachments: r.Attachments("file"),
		date:        date,
	}, nil
}

// Minute is a published set of meeting minutes.
type Minute struct {
	RecordID    string       `json:"id"`
	Title       string       `json:"title"`
	Date        string       `json:"date"`
	Attachments []Attachment `json:"attachments,omitempty"`

	date time.Time
}

func (m Minute) SortKey() time.Time { return m.date }

func minuteFromRecord(r Record) (Item, error) {
	title, err := r.RequireString("title")
	if err != nil {
		return nil, err
	}
	date, err := r.Date("date")
	if err != nil {
		return nil, err
	}
	return Minute{
		RecordID:    r.ID(),
		Title:       title,
		Date:        r.String("date"),
		Attachments: r.Attachments("file"),
		date:        date,
	}, nil
}

// Circular is a distributed notice, usually a scanned document.
type Circular struct {
	RecordID    string       `json:"id"`
	Title       string       `json:"title"`
	Date        string       `json:"date"`
	Attachments []Attachment `json:"attachments,omitempty"`

	date time.Time
}

func (c Circular) SortKey() time.Time { return c.date }

func circularFromRecord(r Record) (Item, error) {
	title, err := r.RequireString("title")
	if err != nil {
		return nil, err
	}
	date, err := r.Date("date")
	if err != nil {
		return nil, err
	}
	return Circular{
		RecordID:    r.ID(),
		Title:       title,
		Date:        r.String("date"),
		Attachments: r.Attachments("file"),
		date:        date,
	}, nil
}

// Application is a downloadable application form.
type Application struct {
	RecordID    string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Date        string       `json:"date,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`

	date time.Time
}

func (a Application) SortKey() time.Time { return a.date }

func applicationFromRecord(r Record) (Item, error) {
	title, err := r.RequireString("title")
	if err != nil {
		return nil, err
	}
	// Application forms are not always dated; undated forms sort last.
	date, _ := r.Date("date")
	return Application{
		RecordID:    r.ID(),
		Title:       title,
		Description: r.String("description"),
		Date:        r.String("date"),
		Attachments: r.Attachments("file"),
		date:        date,
	}, nil
}

// WellnessFile is a green-wellness program document.
type WellnessFile struct {
	RecordID    string       `json:"id"`
	Title       string       `json:"title"`
	Date        string       `json:"date"`
	Attachments []Attachment `json:"attachments,omitempty"`

	date time.Time
}

func (w WellnessFile) SortKey() time.Time { return w.date }

func wellnessFileFromRecord(r Record) (Item, error) {
	title, err := r.RequireString("title")
	if err != nil {
		return nil, err
	}
	date, err := r.Date("date")
	if err != nil {
		return nil, err
	}
	return WellnessFile{
		RecordID:    r.ID(),
		Title:       title,
		Date:        r.String("date"),
		Attachments: r.Attachments("file"),
		date:        date,
	}, nil
}

// Event is a scheduled co-op event.
type Event struct {
	RecordID    string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Place       string `json:"place,omitempty"`
	Description string `json:"description,omitempty"`

	date time.Time
}

func (e Event) SortKey() time.Time { return e.date }

func eventFromRecord(r Record) (Item, error) {
	title, err := r.RequireString("title")
	if err != nil {
		return nil, err
	}
	date, err := r.Date("date")
	if err != nil {
		return nil, err
	}
	return Event{
		RecordID:    r.ID(),
		Title:       title,
		Date:        r.String("date"),
		Place:       r.String("place"),
		Description: r.String("description"),
		date:        date,
	}, nil
}
