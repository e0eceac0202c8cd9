/*

Maverick infers population structure from multi-locus genotype data
using a Bayesian admixture mixture model sampled by MCMC.

The basic usage looks like this:

	maverick -k 3 data.txt

, this will run one chain with three demes and print per-iteration
likelihood observables followed by the posterior Q-matrices.

To see all the options run:

	maverick -h

*/
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"golang.org/x/exp/rand"

	bolt "go.etcd.io/bbolt"

	"github.com/thierrygosselin/MavericK/admix"
	"github.com/thierrygosselin/MavericK/checkpoint"
	"github.com/thierrygosselin/MavericK/geno"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("maverick")
var formatter = logging.MustStringFormatter(`%{message}`)

// command-line options
var (
	// application
	app = kingpin.New("maverick", "Bayesian admixture analysis of population structure").Version(version)

	// input data
	dataFileName = app.Arg("data", "genotype data file").Required().ExistingFile()

	// model parameters
	k           = app.Flag("k", "number of demes").Default("2").Int()
	lambda      = app.Flag("lambda", "allele-frequency prior pseudocount").Default("1").Float64()
	alpha       = app.Flag("alpha", "admixture concentration parameter (starting value unless -fixalpha)").Default("1").Float64()
	fixAlpha    = app.Flag("fixalpha", "keep alpha fixed instead of updating it by Metropolis steps").Bool()
	alphaPropSD = app.Flag("alphapropsd", "standard deviation of the alpha proposal").Default("0.1").Float64()
	beta        = app.Flag("beta", "thermodynamic temperature exponent").Default("1").Float64()

	// mcmc parameters
	burnIn   = app.Flag("burnin", "number of burn-in iterations").Default("100").Int()
	samples  = app.Flag("samples", "number of sampling iterations").Default("1000").Int()
	thinning = app.Flag("thinning", "thinning interval after burn-in").Default("1").Int()
	repeats  = app.Flag("repeats", "number of independent chain repeats").Default("1").Int()

	// output toggles
	noFixLabels = app.Flag("nofixlabels", "disable the label-switching correction and Q-matrix output").Bool()
	drawFreqs   = app.Flag("drawfreqs", "draw allele frequencies and compute the joint likelihood").Bool()
	popQmatrix  = app.Flag("popqmatrix", "aggregate the Q-matrix by population label").Bool()
	quiet       = app.Flag("quiet", "suppress the per-iteration output").Bool()

	// technical
	seed  = app.Flag("seed", "random generator seed, default time based").Default("-1").Int64()
	ckptF = app.Flag("checkpoint", "checkpoint file").String()

	// input/output
	outLogF  = app.Flag("log", "write log to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	jsonF = app.Flag("json", "write json output to a file").String()
)

// sampleWriter prints one tab-separated line per MCMC iteration.
type sampleWriter struct {
	header bool
}

func (w *sampleWriter) Sample(s *admix.Sample) {
	if !w.header {
		fmt.Println("K\trep\titeration\tlogLikeGroup\tlogLikeJoint\talpha")
		w.header = true
	}
	fmt.Printf("%d\t%d\t%d\t%f\t%f\t%f\n", s.K, s.Rep+1, s.Iter, s.LogLikeGroup, s.LogLikeJoint, s.Alpha)
}

func run(data *geno.Data, rnd *rand.Rand, ckpt *checkpoint.CheckpointIO) (*RunSummary, error) {
	cfg := admix.Config{
		K:           *k,
		Lambda:      *lambda,
		Alpha:       *alpha,
		FixAlpha:    *fixAlpha,
		AlphaPropSD: *alphaPropSD,
		Beta:        *beta,
		BurnIn:      *burnIn,
		Samples:     *samples,
		Thinning:    *thinning,
		FixLabels:   !*noFixLabels,
		DrawFreqs:   *drawFreqs,
		PopQmatrix:  *popQmatrix,
	}

	chain, err := admix.New(data, cfg, rnd)
	if err != nil {
		return nil, err
	}
	if !*quiet {
		chain.SetObserver(&sampleWriter{})
	}
	if ckpt != nil {
		chain.SetCheckpointIO(ckpt)
	}

	summary := &RunSummary{K: *k}
	for rep := 0; rep < *repeats; rep++ {
		if rep > 0 {
			// keep the running label reference, so repeats stay
			// label-consistent
			chain.Reset(false)
		}
		chain.Run(rep)

		sum, sumSq := chain.LogLikeGroupSums()
		jSum, jSumSq := chain.LogLikeJointSums()
		summary.Chains = append(summary.Chains, ChainSummary{
			Rep:                 rep + 1,
			Alpha:               chain.Alpha(),
			LogLikeGroupMean:    chain.LogLikeGroupMean(),
			LogLikeGroupSum:     sum,
			LogLikeGroupSumSq:   sumSq,
			LogLikeJointSum:     jSum,
			LogLikeJointSumSq:   jSumSq,
			HarmonicLogEvidence: chain.Harmonic(),
		})

		if !*quiet && !*noFixLabels {
			printQmatrix("Qmatrix_ind", data.Labels, chain.QmatrixInd())
			if *popQmatrix {
				printQmatrix("Qmatrix_pop", data.PopNames(), chain.QmatrixPop())
			}
		}
	}
	return summary, nil
}

// printQmatrix writes one labeled probability row per line.
func printQmatrix(name string, labels []string, q [][]float64) {
	fmt.Printf("\n%s\n", name)
	for i, row := range q {
		label := fmt.Sprintf("%d", i+1)
		if i < len(labels) {
			label = labels[i]
		}
		fmt.Print(label)
		for _, v := range row {
			fmt.Printf("\t%f", v)
		}
		fmt.Println()
	}
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	logging.SetLevel(level, "maverick")
	logging.SetLevel(level, "admix")
	logging.SetLevel(level, "geno")
	logging.SetLevel(level, "checkpoint")

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	if *seed == -1 {
		*seed = time.Now().UnixNano()
		log.Debug("Random seed from time")
	}
	log.Infof("Random seed=%v", *seed)
	rnd := rand.New(rand.NewSource(uint64(*seed)))

	dataFile, err := os.Open(*dataFileName)
	if err != nil {
		log.Fatal(err)
	}
	data, err := geno.Parse(dataFile)
	dataFile.Close()
	if err != nil {
		log.Fatal(err)
	}

	var ckpt *checkpoint.CheckpointIO
	if *ckptF != "" {
		db, err := bolt.Open(*ckptF, 0666, nil)
		if err != nil {
			log.Fatal("Error opening checkpoint file:", err)
		}
		defer db.Close()
		ckpt = checkpoint.NewCheckpointIO(db, []byte(fmt.Sprintf("K=%d", *k)), 30)
		if _, err := ckpt.Last(); err != nil {
			log.Error("Error reading checkpoint:", err)
		}
	}

	startTime := time.Now()
	summary, err := run(data, rnd, ckpt)
	if err != nil {
		log.Fatal(err)
	}
	summary.Version = version
	summary.CommandLine = os.Args
	summary.Seed = *seed
	summary.Time = time.Since(startTime).Seconds()

	// output summary in json format
	if *jsonF != "" {
		j, err := json.Marshal(summary)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			f, err := os.Create(*jsonF)
			if err != nil {
				log.Error("Error creating json output file:", err)
			} else {
				f.Write(j)
				f.Close()
			}
		}
	}
}
