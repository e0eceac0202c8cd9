package main

// ChainSummary stores the results of one chain repeat.
type ChainSummary struct {
	// Rep is the 1-based repeat index.
	Rep int `json:"rep"`
	// Alpha is the concentration parameter at the end of the chain.
	Alpha float64 `json:"alpha"`
	// LogLikeGroupMean is the post-burn-in mean marginal log-likelihood.
	LogLikeGroupMean float64 `json:"logLikeGroupMean"`
	// LogLikeGroupSum and LogLikeGroupSumSq are the running sums behind
	// the mean and its standard error.
	LogLikeGroupSum   float64 `json:"logLikeGroupSum"`
	LogLikeGroupSumSq float64 `json:"logLikeGroupSumSq"`
	// LogLikeJointSum and LogLikeJointSumSq are the joint-likelihood
	// running sums; zero unless frequency drawing is enabled.
	LogLikeJointSum   float64 `json:"logLikeJointSum,omitempty"`
	LogLikeJointSumSq float64 `json:"logLikeJointSumSq,omitempty"`
	// HarmonicLogEvidence is the harmonic-mean log-evidence estimate.
	HarmonicLogEvidence float64 `json:"harmonicLogEvidence"`
}

// RunSummary stores summary information of a maverick run.
type RunSummary struct {
	// Version stores the maverick version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Seed is the seed used for random number generation initialization.
	Seed int64 `json:"seed"`
	// K is the number of demes.
	K int `json:"k"`
	// Time is the computations time in seconds.
	Time float64 `json:"time"`
	// Chains stores one summary per chain repeat.
	Chains []ChainSummary `json:"chains"`
}
