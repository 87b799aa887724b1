package fraudmodel

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kiteco/fraudfilter/kite-go/jobposting"
)

// LoadDataset loads the dataset at path, local or s3://, and splits it with the
// session's seed and schema. The seed and schema of opts are ignored.
func LoadDataset(sess *Session, path string, opts jobposting.LoadOptions) (jobposting.Split, error) {
	log := sess.logger()
	opts.Seed = sess.Seed
	opts.Schema = sess.schema()

	start := time.Now()
	split, err := jobposting.Load(path, opts)
	if err != nil {
		return jobposting.Split{}, err
	}
	log.Durations.Since("load", start)
	log.Printf("loaded %s: %s train (%d fraudulent), %s test (%d fraudulent)", path,
		humanize.Comma(int64(len(split.Train))), jobposting.CountFraudulent(split.Train),
		humanize.Comma(int64(len(split.Test))), jobposting.CountFraudulent(split.Test))
	return split, nil
}
