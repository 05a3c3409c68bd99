package field

// Text is a full-text field.
type Text struct {
	FieldName string
	Weight    float64
	Phonetic  string // e.g. "dm:en"
	NoStem    bool
	Sortable  bool
	NoIndex   bool
}

// NewText returns a text field with engine defaults.
func NewText(name string) Text { return Text{FieldName: name} }

// Name returns the field name.
func (t Text) Name() string { return t.FieldName }

// Kind returns KindText.
func (t Text) Kind() Kind { return KindText }

// Compile returns name TEXT [WEIGHT w] [PHONETIC p] [NOSTEM] [SORTABLE] [NOINDEX].
func (t Text) Compile() []string {
	args := []string{t.FieldName, string(KindText)}
	if t.Weight != 0 {
		args = append(args, "WEIGHT", formatFloat(t.Weight))
	}
	args = appendPair(args, "PHONETIC", t.Phonetic)
	return appendFlags(args,
		flag{"NOSTEM", t.NoStem},
		flag{"SORTABLE", t.Sortable},
		flag{"NOINDEX", t.NoIndex},
	)
}
