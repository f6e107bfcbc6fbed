package roster

// Mode selects how much of the student template a routing run writes.
type Mode string

const (
	// ModePlain writes the key block and org table only.
	ModePlain Mode = "plain"
	// ModeFull additionally writes the status legend and anchors the
	// office logo.
	ModeFull Mode = "full"
)

// Options configures a routing run.
type Options struct {
	// Mode selects the template depth (plain, full).
	Mode Mode
	// IncludeLegend specifies whether to write the status legend.
	// If nil, defaults to true for full mode, false otherwise.
	IncludeLegend *bool
	// IncludeLogo specifies whether to anchor the office logo.
	// If nil, defaults to true for full mode, false otherwise.
	IncludeLogo *bool
}

// DefaultOptions returns default routing options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeFull,
	}
}

// ShouldIncludeLegend returns whether to write the status legend.
func (o Options) ShouldIncludeLegend() bool {
	if o.IncludeLegend != nil {
		return *o.IncludeLegend
	}
	return o.Mode == ModeFull
}

// ShouldIncludeLogo returns whether to anchor the office logo.
func (o Options) ShouldIncludeLogo() bool {
	if o.IncludeLogo != nil {
		return *o.IncludeLogo
	}
	return o.Mode == ModeFull
}
