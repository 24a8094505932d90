//go:build cgo

package highs

// SolveOption configures a single call to Model.Solve.
type SolveOption func(*solveConfig)

type solveConfig struct {
	output      *bool
	timeLimit   *float64
	mipRelGap   *float64
	threads     *int
	presolve    *string
	modelFile   string
	extraBool   map[string]bool
	extraInt    map[string]int
	extraFloat  map[string]float64
	extraString map[string]string
}

func defaultSolveConfig() *solveConfig {
	return &solveConfig{
		extraBool:   make(map[string]bool),
		extraInt:    make(map[string]int),
		extraFloat:  make(map[string]float64),
		extraString: make(map[string]string),
	}
}

func (c *solveConfig) apply(s *Solver) error {
	if c.output != nil {
		if err := s.SetBoolOption("output_flag", *c.output); err != nil {
			return err
		}
	}
	if c.timeLimit != nil {
		if err := s.SetFloatOption("time_limit", *c.timeLimit); err != nil {
			return err
		}
	}
	if c.mipRelGap != nil {
		if err := s.SetFloatOption("mip_rel_gap", *c.mipRelGap); err != nil {
			return err
		}
	}
	if c.threads != nil {
		if err := s.SetIntOption("threads", *c.threads); err != nil {
			return err
		}
	}
	if c.presolve != nil {
		if err := s.SetStringOption("presolve", *c.presolve); err != nil {
			return err
		}
	}
	for k, v := range c.extraBool {
		if err := s.SetBoolOption(k, v); err != nil {
			return err
		}
	}
	for k, v := range c.extraInt {
		if err := s.SetIntOption(k, v); err != nil {
			return err
		}
	}
	for k, v := range c.extraFloat {
		if err := s.SetFloatOption(k, v); err != nil {
			return err
		}
	}
	for k, v := range c.extraString {
		if err := s.SetStringOption(k, v); err != nil {
			return err
		}
	}
	return nil
}

// WithOutput enables or disables the solver log on stdout.
func WithOutput(enabled bool) SolveOption {
	return func(c *solveConfig) {
		c.output = &enabled
	}
}

// WithTimeLimit sets the time limit in seconds.
func WithTimeLimit(seconds float64) SolveOption {
	return func(c *solveConfig) {
		c.timeLimit = &seconds
	}
}

// WithMIPRelGap sets the relative gap at which a MIP solve stops.
func WithMIPRelGap(gap float64) SolveOption {
	return func(c *solveConfig) {
		c.mipRelGap = &gap
	}
}

// WithThreads sets the number of solver threads.
func WithThreads(n int) SolveOption {
	return func(c *solveConfig) {
		c.threads = &n
	}
}

// WithPresolve sets the presolve mode ("off", "choose", "on").
func WithPresolve(mode string) SolveOption {
	return func(c *solveConfig) {
		c.presolve = &mode
	}
}

// WithModelFile writes the loaded model to path before solving. The
// extension selects the format (.lp or .mps).
func WithModelFile(path string) SolveOption {
	return func(c *solveConfig) {
		c.modelFile = path
	}
}

// WithBoolOption sets any boolean HiGHS option by name.
func WithBoolOption(name string, value bool) SolveOption {
	return func(c *solveConfig) {
		c.extraBool[name] = value
	}
}

// WithIntOption sets any integer HiGHS option by name.
func WithIntOption(name string, value int) SolveOption {
	return func(c *solveConfig) {
		c.extraInt[name] = value
	}
}

// WithFloatOption sets any floating-point HiGHS option by name.
func WithFloatOption(name string, value float64) SolveOption {
	return func(c *solveConfig) {
		c.extraFloat[name] = value
	}
}

// WithStringOption sets any string HiGHS option by name.
func WithStringOption(name, value string) SolveOption {
	return func(c *solveConfig) {
		c.extraString[name] = value
	}
}
