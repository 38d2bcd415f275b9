package fit

// Params holds the intercept and slope of a logistic psychometric function:
// p(x) = logistic(Params[0] + Params[1]*x)
type Params [2]float64

// Intercept returns b0
func (p Params) Intercept() float64 { return p[0] }

// Slope returns b1
func (p Params) Slope() float64 { return p[1] }

// Linear evaluates the linear predictor at intensity x
func (p Params) Linear(x float64) float64 {
	return p[0] + p[1]*x
}

// Prob returns the modelled probability of a positive response at intensity x
func (p Params) Prob(x float64) float64 {
	return Logistic(p.Linear(x))
}

// Trial is a single stimulus presentation and its binary outcome
type Trial struct {
	Intensity float64
	Response  bool // true encodes outcome 1
}

// Dataset holds the trials of one simulated experiment.
// It is owned by a single repetition and never shared.
type Dataset struct {
	Trials []Trial
}

// NewDataset creates an empty dataset with room for n trials
func NewDataset(n int) *Dataset {
	return &Dataset{Trials: make([]Trial, 0, n)}
}

// Add appends a trial
func (d *Dataset) Add(intensity float64, response bool) {
	d.Trials = append(d.Trials, Trial{Intensity: intensity, Response: response})
}

// Len returns the number of trials
func (d *Dataset) Len() int {
	return len(d.Trials)
}

// Positives counts trials with outcome 1
func (d *Dataset) Positives() int {
	n := 0
	for _, t := range d.Trials {
		if t.Response {
			n++
		}
	}
	return n
}

// DefaultIntensities returns the design points spanning the expected psychometric range
func DefaultIntensities() []float64 {
	return []float64{-20.0, -10.0, -5.0, 0.0, 5.0, 10.0, 20.0}
}

// DefaultInitialGuess is the starting point handed to the optimizer
var DefaultInitialGuess = Params{0.0, 0.40}
