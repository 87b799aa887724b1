package jobposting

// Record is one job posting.
type Record struct {
	Title          string
	Location       string
	Department     string
	CompanyProfile string
	Description    string
	Requirements   string
	Benefits       string

	Telecommuting  float64
	HasCompanyLogo float64
	HasQuestions   float64

	Fraudulent bool
}

var textFields = map[string]func(*Record) *string{
	TitleColumn:          func(r *Record) *string { return &r.Title },
	LocationColumn:       func(r *Record) *string { return &r.Location },
	DepartmentColumn:     func(r *Record) *string { return &r.Department },
	CompanyProfileColumn: func(r *Record) *string { return &r.CompanyProfile },
	DescriptionColumn:    func(r *Record) *string { return &r.Description },
	RequirementsColumn:   func(r *Record) *string { return &r.Requirements },
	BenefitsColumn:       func(r *Record) *string { return &r.Benefits },
}

var floatFields = map[string]func(*Record) *float64{
	TelecommutingColumn: func(r *Record) *float64 { return &r.Telecommuting },
	CompanyLogoColumn:   func(r *Record) *float64 { return &r.HasCompanyLogo },
	QuestionsColumn:     func(r *Record) *float64 { return &r.HasQuestions },
}

// Text returns the value of a free text column.
func (r Record) Text(column string) (string, bool) {
	f, ok := textFields[column]
	if !ok {
		return "", false
	}
	return *f(&r), true
}

// Float returns the value of a numeric column. The label reads as 1 for fraudulent
// postings and 0 otherwise.
func (r Record) Float(column string) (float64, bool) {
	if column == FraudulentColumn {
		if r.Fraudulent {
			return 1, true
		}
		return 0, true
	}
	f, ok := floatFields[column]
	if !ok {
		return 0, false
	}
	return *f(&r), true
}

// hasField reports whether the record can hold a column of the given name and type.
func hasField(c Column) bool {
	switch c.Type {
	case Text:
		_, ok := textFields[c.Name]
		return ok
	case Float:
		_, ok := floatFields[c.Name]
		return ok
	case Bool:
		return c.Name == FraudulentColumn
	}
	return false
}

// Labels returns the label of each record.
func Labels(records []Record) []bool {
	labels := make([]bool, len(records))
	for i, r := range records {
		labels[i] = r.Fraudulent
	}
	return labels
}

// CountFraudulent returns the number of records labeled fraudulent.
func CountFraudulent(records []Record) int {
	var n int
	for _, r := range records {
		if r.Fraudulent {
			n++
		}
	}
	return n
}
