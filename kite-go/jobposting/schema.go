package jobposting

import "fmt"

// ColumnType is the type a column is parsed as.
type ColumnType int

const (
	// Text columns are kept as raw strings, empty allowed
	Text ColumnType = iota
	// Float columns parse with strconv.ParseFloat, empty parses as 0
	Float
	// Bool columns accept 0/1/true/false
	Bool
)

func (t ColumnType) String() string {
	switch t {
	case Text:
		return "text"
	case Float:
		return "float"
	case Bool:
		return "bool"
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// Column describes one positional field of a row.
type Column struct {
	Name     string
	Type     ColumnType
	Position int
}

// Schema is the ordered list of columns of a row along with the name of the label column.
type Schema struct {
	Columns []Column
	Label   string
}

// Column names of the job postings dataset.
const (
	TitleColumn          = "title"
	LocationColumn       = "location"
	DepartmentColumn     = "department"
	CompanyProfileColumn = "company_profile"
	DescriptionColumn    = "description"
	RequirementsColumn   = "requirements"
	BenefitsColumn       = "benefits"
	TelecommutingColumn  = "telecommuting"
	CompanyLogoColumn    = "has_company_logo"
	QuestionsColumn      = "has_questions"
	FraudulentColumn     = "fraudulent"
)

// DefaultSchema describes the 11 columns of the job postings csv, label last.
func DefaultSchema() Schema {
	cols := []struct {
		name string
		typ  ColumnType
	}{
		{TitleColumn, Text},
		{LocationColumn, Text},
		{DepartmentColumn, Text},
		{CompanyProfileColumn, Text},
		{DescriptionColumn, Text},
		{RequirementsColumn, Text},
		{BenefitsColumn, Text},
		{TelecommutingColumn, Float},
		{CompanyLogoColumn, Float},
		{QuestionsColumn, Float},
		{FraudulentColumn, Bool},
	}

	s := Schema{Label: FraudulentColumn}
	for i, c := range cols {
		s.Columns = append(s.Columns, Column{Name: c.name, Type: c.typ, Position: i})
	}
	return s
}

// Len returns the number of fields a row must have.
func (s Schema) Len() int {
	return len(s.Columns)
}

// Lookup returns the column with the given name.
func (s Schema) Lookup(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Equal reports whether both schemas have the same columns in the same positions and
// the same label.
func (s Schema) Equal(other Schema) bool {
	if s.Label != other.Label || len(s.Columns) != len(other.Columns) {
		return false
	}
	for i := range s.Columns {
		if s.Columns[i] != other.Columns[i] {
			return false
		}
	}
	return true
}

// Unlabeled returns s without its label column, shifting the columns after it down
// one position. The result has no label and does not pass Validate.
func (s Schema) Unlabeled() Schema {
	label, ok := s.Lookup(s.Label)
	var out Schema
	for _, c := range s.Columns {
		if ok && c.Name == label.Name {
			continue
		}
		if ok && c.Position > label.Position {
			c.Position--
		}
		out.Columns = append(out.Columns, c)
	}
	return out
}

// Validate checks that positions are a permutation of [0, Len), names are unique and
// the label is a bool column.
func (s Schema) Validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("schema has no columns")
	}
	names := make(map[string]bool)
	positions := make(map[int]bool)
	for _, c := range s.Columns {
		if c.Name == "" {
			return fmt.Errorf("column at position %d has no name", c.Position)
		}
		if names[c.Name] {
			return fmt.Errorf("duplicate column %s", c.Name)
		}
		if c.Position < 0 || c.Position >= len(s.Columns) || positions[c.Position] {
			return fmt.Errorf("column %s has invalid position %d", c.Name, c.Position)
		}
		names[c.Name] = true
		positions[c.Position] = true
	}
	label, ok := s.Lookup(s.Label)
	if !ok {
		return fmt.Errorf("label column %s not in schema", s.Label)
	}
	if label.Type != Bool {
		return fmt.Errorf("label column %s must be bool, got %s", s.Label, label.Type)
	}
	return nil
}
