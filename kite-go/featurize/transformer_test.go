package featurize

import (
	"testing"

	"github.com/kiteco/fraudfilter/kite-go/jobposting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainRecords() []jobposting.Record {
	return []jobposting.Record{
		{Title: "Data Entry Clerk", Location: "US, TX", Description: "Work from home and earn weekly", Telecommuting: 1, Fraudulent: true},
		{Title: "Backend Engineer", Location: "DE, Berlin", Department: "Platform", CompanyProfile: "Acme builds tools", Description: "Design Go services", Requirements: "5 years", Benefits: "Stock", HasCompanyLogo: 1, HasQuestions: 1},
		{Title: "Registered Nurse", Location: "US, NY", Description: "Night shifts at the clinic", HasCompanyLogo: 1},
	}
}

func TestFitDefaultSteps(t *testing.T) {
	train := trainRecords()
	tr, err := Fit(DefaultSteps(), jobposting.DefaultSchema(), train)
	require.NoError(t, err)

	textDims := 0
	for _, s := range tr.Steps {
		if s.Kind == FeaturizeText {
			require.NotNil(t, s.Model)
			textDims += s.Dim
		}
	}
	assert.Equal(t, textDims+3, tr.Dim())

	for _, r := range train {
		v := tr.Transform(r)
		assert.Equal(t, tr.Dim(), v.Dim)
		for i := 1; i < len(v.Indices); i++ {
			assert.True(t, v.Indices[i-1] < v.Indices[i])
		}
	}

	// the three flags are the last dimensions
	v := tr.Transform(train[1])
	dense := v.Dense()
	assert.Equal(t, []float64{0, 1, 1}, dense[len(dense)-3:])

	label, ok := tr.Label(train[0])
	assert.True(t, ok)
	assert.True(t, label)
	label, _ = tr.Label(train[1])
	assert.False(t, label)
}

func TestExample(t *testing.T) {
	train := trainRecords()
	tr, err := Fit(DefaultSteps(), jobposting.DefaultSchema(), train)
	require.NoError(t, err)

	for _, r := range train {
		feats, label, ok := tr.Example(r)
		require.True(t, ok)
		assert.Equal(t, tr.Transform(r), feats)
		want, _ := tr.Label(r)
		assert.Equal(t, want, label)
		assert.Equal(t, r.Fraudulent, label)
	}

	steps, err := NewBuilder().
		FeaturizeText("titleFeaturized", jobposting.TitleColumn, DefaultTextOptions()).
		Concatenate(FeaturesColumn, "titleFeaturized").
		Build()
	require.NoError(t, err)
	unlabeled, err := Fit(steps, jobposting.DefaultSchema(), train)
	require.NoError(t, err)
	feats, _, ok := unlabeled.Example(train[0])
	assert.False(t, ok)
	assert.Equal(t, unlabeled.Dim(), feats.Dim)
}

func TestFitDependsOnTrainOnly(t *testing.T) {
	train := trainRecords()
	a, err := Fit(DefaultSteps(), jobposting.DefaultSchema(), train)
	require.NoError(t, err)

	unseen := jobposting.Record{Title: "Crypto Mining Associate", Description: "Limited slots, act now"}
	before := a.Transform(train[0])
	a.Transform(unseen)
	after := a.Transform(train[0])
	assert.Equal(t, before, after)

	b, err := Fit(DefaultSteps(), jobposting.DefaultSchema(), trainRecords())
	require.NoError(t, err)
	assert.Equal(t, a.Dim(), b.Dim())
	for _, r := range train {
		assert.Equal(t, a.Transform(r), b.Transform(r))
	}

	v := a.Transform(unseen)
	assert.Equal(t, a.Dim(), v.Dim)
}

func TestFitAliasedText(t *testing.T) {
	steps, err := NewBuilder().
		CopyColumn("jobTitle", jobposting.TitleColumn).
		FeaturizeText("jobTitleFeaturized", "jobTitle", DefaultTextOptions()).
		Concatenate(FeaturesColumn, "jobTitleFeaturized", jobposting.QuestionsColumn).
		Build()
	require.NoError(t, err)

	tr, err := Fit(steps, jobposting.DefaultSchema(), trainRecords())
	require.NoError(t, err)

	col, ok := tr.Column(trainRecords()[0], "jobTitleFeaturized")
	require.True(t, ok)
	assert.NotEmpty(t, col.Indices)
	assert.Equal(t, col.Dim+1, tr.Dim())

	_, ok = tr.Label(trainRecords()[0])
	assert.False(t, ok)
}

func TestFitRequiresFeatures(t *testing.T) {
	steps, err := NewBuilder().CopyColumn(LabelColumn, jobposting.FraudulentColumn).Build()
	require.NoError(t, err)
	_, err = Fit(steps, jobposting.DefaultSchema(), trainRecords())
	assert.Error(t, err)
}
