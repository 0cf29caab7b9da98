package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/pkg/errors"
	"github.com/tarstars/rank_entropy_split/golang/rank_split/rsl"
	"gonum.org/v1/gonum/mat"
)

func decodeConfig(srcConfig string, out interface{}) {
	file, err := os.Open(srcConfig)
	rsl.HandleError(err)
	defer func() { rsl.HandleError(file.Close()) }()

	decoder := json.NewDecoder(file)
	rsl.HandleError(decoder.Decode(out))
}

type DatasetConfig struct {
	FileNameFeatures string   `json:"filename_features"`
	FileNameLabels   string   `json:"filename_labels"`
	FileNameWeights  string   `json:"filename_weights"`
	NumClasses       int      `json:"num_classes"`
	NominalColumns   []int    `json:"nominal_columns"`
	AttributeNames   []string `json:"attribute_names"`
}

func loadDataset(datasetConfig DatasetConfig) rsl.Dataset {
	log.Println("load dataset")
	ds, err := rsl.ReadDataset(
		datasetConfig.FileNameFeatures,
		datasetConfig.FileNameLabels,
		datasetConfig.FileNameWeights,
		datasetConfig.NumClasses,
	)
	rsl.HandleError(err)

	_, w := ds.Features.Dims()
	ds.Nominal, err = nominalFlags(datasetConfig.NominalColumns, w)
	if err != nil {
		log.Fatalf("bad dataset config: %v", err)
	}
	ds.AttributeNames = datasetConfig.AttributeNames
	return ds
}

//nominalFlags turns the configured nominal column indices into per-attribute flags.
func nominalFlags(columns []int, w int) ([]bool, error) {
	if len(columns) == 0 {
		return nil, nil
	}
	nominal := make([]bool, w)
	for _, col := range columns {
		if col < 0 || col >= w {
			return nil, errors.Errorf("nominal column %d is outside [0, %d)", col, w)
		}
		nominal[col] = true
	}
	return nominal, nil
}

//SplitSummary is the JSON form of a found split.
type SplitSummary struct {
	AttIndex      int         `json:"att_index"`
	AttributeName string      `json:"attribute_name"`
	Nominal       bool        `json:"nominal"`
	Threshold     float64     `json:"threshold"`
	RMI           float64     `json:"rmi"`
	NumSubsets    int         `json:"num_subsets"`
	Distribution  [][]float64 `json:"distribution"`
}

type SplitConfig struct {
	Dataset          DatasetConfig `json:"dataset"`
	MinLeafSize      int           `json:"min_leaf_size"`
	UseMDLCorrection bool          `json:"use_mdl_correction"`
	ThreadsNum       int           `json:"threads_num"`
	FileNameSplit    string        `json:"filename_split"`
}

func findSplit(splitConfig SplitConfig, ds *rsl.Dataset) rsl.RankedSplit {
	split, err := rsl.TheBestSplit(context.Background(), ds, rsl.SplitParams{
		MinLeafSize:      splitConfig.MinLeafSize,
		UseMDLCorrection: splitConfig.UseMDLCorrection,
		ThreadsNum:       splitConfig.ThreadsNum,
		Verbose:          true,
	})
	rsl.HandleError(err)
	return split
}

func split(srcConfig string) {
	var splitConfig SplitConfig
	decodeConfig(srcConfig, &splitConfig)

	ds := loadDataset(splitConfig.Dataset)
	best := findSplit(splitConfig, &ds)

	summary := SplitSummary{AttIndex: -1}
	if best == nil {
		log.Print("no attribute yields a split")
	} else {
		log.Print("best split on ", ds.AttributeName(best.AttIndex()), best.RightSide(0, &ds))
		summary = SplitSummary{
			AttIndex:      best.AttIndex(),
			AttributeName: ds.AttributeName(best.AttIndex()),
			Nominal:       ds.IsNominal(best.AttIndex()),
			Threshold:     best.Threshold(),
			RMI:           best.RMI(),
			NumSubsets:    best.NumSubsets(),
			Distribution:  best.Distribution().Rows(),
		}
	}

	dst, err := os.Create(splitConfig.FileNameSplit)
	rsl.HandleError(err)
	defer func() { rsl.HandleError(dst.Close()) }()

	bytesResult, err := json.MarshalIndent(summary, "", "  ")
	rsl.HandleError(err)
	_, err = dst.Write(bytesResult)
	rsl.HandleError(err)
}

type ScanConfig struct {
	Dataset            DatasetConfig `json:"dataset"`
	AttIndex           int           `json:"att_index"`
	MinLeafSize        int           `json:"min_leaf_size"`
	FileNameCandidates string        `json:"filename_candidates"`
}

//scan dumps every boundary of one attribute as a npy matrix with the columns
//index, threshold, score, admissible, below weight, above weight.
func scan(srcConfig string) {
	var scanConfig ScanConfig
	decodeConfig(srcConfig, &scanConfig)

	ds := loadDataset(scanConfig.Dataset)
	view, err := rsl.NewSortedView(&ds, scanConfig.AttIndex)
	rsl.HandleError(err)

	candidates, err := rsl.ScanCandidates(view, scanConfig.MinLeafSize)
	rsl.HandleError(err)
	log.Printf("%d boundaries on %s", len(candidates), ds.AttributeName(scanConfig.AttIndex))

	if len(candidates) == 0 {
		log.Print("nothing to write")
		return
	}

	dump := mat.NewDense(len(candidates), 6, nil)
	for ind, candidate := range candidates {
		admissible := 0.0
		if candidate.Admissible {
			admissible = 1.0
		}
		dump.SetRow(ind, []float64{
			float64(candidate.Index),
			candidate.Threshold,
			candidate.Score,
			admissible,
			candidate.BelowWeight,
			candidate.AboveWeight,
		})
	}
	rsl.HandleError(rsl.WriteNpy(scanConfig.FileNameCandidates, dump))
}

type GraphConfig struct {
	Split        SplitConfig `json:"split"`
	FigureType   string      `json:"figure_type"`
	FileNameDraw string      `json:"filename_draw"`
}

func graph(srcConfig string) {
	var graphConfig GraphConfig
	decodeConfig(srcConfig, &graphConfig)

	ds := loadDataset(graphConfig.Split.Dataset)
	best := findSplit(graphConfig.Split, &ds)
	if best == nil {
		log.Print("no attribute yields a split, nothing to draw")
		return
	}
	rsl.HandleError(rsl.RenderSplit(best, &ds, graphConfig.FigureType, graphConfig.FileNameDraw))
}

func main() {
	runMode := flag.String("mode", "split", "you can select either 'split', 'scan' or 'graph' modes")
	config := flag.String("config", "rank_split_config.json", "a config file for the run of the program")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")

	flag.Parse()

	modeFunc, ok := map[string]func(string){
		"split": split,
		"scan":  scan,
		"graph": graph,
	}[*runMode]
	if !ok {
		log.Fatalf("unknown mode %q", *runMode)
	}
	modeFunc(*config)

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		rsl.HandleError(err)
		defer func() { rsl.HandleError(f.Close()) }()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}
