package types

// Obsoletes declares a module stream as superseded. Reset hides it from
// normal lookup while it remains present in the aggregated Module view.
type Obsoletes struct {
	ModuleName   string
	ModuleStream string
	Context      string // optional
	Modified     int64

	Reset bool

	MessageText     string
	EvictedByModule string
	EvictedByStream string
}

// NewObsoletes constructs an Obsoletes record.
func NewObsoletes(moduleName, moduleStream string, modified int64) *Obsoletes {
	return &Obsoletes{ModuleName: moduleName, ModuleStream: moduleStream, Modified: modified}
}

func (o *Obsoletes) Copy() *Obsoletes {
	out := *o
	return &out
}

func (o *Obsoletes) Equals(other *Obsoletes) bool {
	return *o == *other
}

func (o *Obsoletes) Validate() error {
	if o.ModuleName == "" || o.ModuleStream == "" {
		return ValidationError("obsoletes document must name a module and a stream")
	}
	return nil
}

// Key returns the (module, stream, context, modified) tuple merges key
// obsoletes records on.
func (o *Obsoletes) Key() [4]string {
	return [4]string{o.ModuleName, o.ModuleStream, o.Context, itoa64(o.Modified)}
}

func itoa64(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
