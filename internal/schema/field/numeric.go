package field

// Numeric is a range-filterable number field.
type Numeric struct {
	FieldName string
	Sortable  bool
	NoIndex   bool
}

// NewNumeric returns a numeric field.
func NewNumeric(name string) Numeric { return Numeric{FieldName: name} }

// Name returns the field name.
func (n Numeric) Name() string { return n.FieldName }

// Kind returns KindNumeric.
func (n Numeric) Kind() Kind { return KindNumeric }

// Compile returns name NUMERIC [SORTABLE] [NOINDEX].
func (n Numeric) Compile() []string {
	return appendFlags([]string{n.FieldName, string(KindNumeric)},
		flag{"SORTABLE", n.Sortable},
		flag{"NOINDEX", n.NoIndex},
	)
}

// Geo is a longitude/latitude point field.
type Geo struct {
	FieldName string
	Sortable  bool
	NoIndex   bool
}

// NewGeo returns a geo field.
func NewGeo(name string) Geo { return Geo{FieldName: name} }

// Name returns the field name.
func (g Geo) Name() string { return g.FieldName }

// Kind returns KindGeo.
func (g Geo) Kind() Kind { return KindGeo }

// Compile returns name GEO [SORTABLE] [NOINDEX].
func (g Geo) Compile() []string {
	return appendFlags([]string{g.FieldName, string(KindGeo)},
		flag{"SORTABLE", g.Sortable},
		flag{"NOINDEX", g.NoIndex},
	)
}
