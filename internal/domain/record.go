package domain

import "time"

// Field names every synced collection must (or may) carry.
const (
	FieldProject     = "Project"
	FieldDescription = "Description"
	FieldDate        = "Date"
	FieldHours       = "Hours"
	FieldStartTime   = "Start Time"
	FieldEndTime     = "End Time"
)

// RequiredFields are checked, in this order, when validating a connection.
var RequiredFields = []string{FieldProject, FieldDescription, FieldDate, FieldHours}

// Schema describes an external collection.
type Schema struct {
	ID     string
	Title  string
	Fields []string
}

// HasField reports whether name is one of the schema's fields.
func (s Schema) HasField(name string) bool {
	for _, f := range s.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// PropertyKind is the shape of a record field in the external system.
type PropertyKind string

const (
	KindTitle    PropertyKind = "title"
	KindRichText PropertyKind = "rich_text"
	KindDate     PropertyKind = "date"
	KindNumber   PropertyKind = "number"
)

// Property is one typed field value. Only the slot matching Kind is meaningful;
// Number is nil when the external value is empty.
type Property struct {
	Kind   PropertyKind
	Text   string
	Date   string // YYYY-MM-DD or RFC3339, as stored externally
	Number *float64
}

func TitleProperty(s string) Property    { return Property{Kind: KindTitle, Text: s} }
func RichTextProperty(s string) Property { return Property{Kind: KindRichText, Text: s} }
func DateProperty(day string) Property   { return Property{Kind: KindDate, Date: day} }

func NumberProperty(v float64) Property {
	return Property{Kind: KindNumber, Number: &v}
}

// Record is a row of the external collection.
type Record struct {
	ID          string
	CreatedTime time.Time
	Properties  map[string]Property
}

// Query selects records of a collection.
type Query struct {
	SortField  string
	Descending bool
}

// Entry sources recorded in the archive.
const (
	SourcePush = "push"
	SourcePull = "pull"
)

// ArchivedEntry is an entry mirrored into local storage after a sync.
type ArchivedEntry struct {
	Entry    TimeEntry
	RecordID string
	Source   string
}
