package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// dateValue is a pflag.Value for calendar days given as YYYY-MM-DD. Days
// are taken in UTC.
type dateValue struct {
	t *time.Time
}

var _ pflag.Value = dateValue{}

func (d dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d dateValue) Set(s string) error {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	*d.t = t
	return nil
}

func (d dateValue) Type() string {
	return "date"
}

func dateVar(fs *pflag.FlagSet, p *time.Time, name, usage string) {
	fs.Var(dateValue{t: p}, name, usage)
}
