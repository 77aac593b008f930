package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/urfave/cli"

	"github.com/akualab/gestrec"
	"github.com/akualab/gestrec/model"
	"github.com/akualab/gestrec/model/hmm"
	"github.com/akualab/gestrec/recognizer"
)

var recognizeCommand = cli.Command{
	Name:      "recognize",
	ShortName: "r",
	Usage:     "Scores test items against a model bank and guesses words.",
	Description: `runs recognizer.

Writes one JSON result per line. When labeled test items are
available, also reports accuracy.

ex:
 $ gestrec recognize
`,
	Action: recognizeAction,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "data-set, d", Usage: "the file with the list of test data files"},
		cli.StringFlag{Name: "model-in, i", Usage: "input model bank filename"},
		cli.StringFlag{Name: "results-file, r", Usage: "output results filename"},
	},
}

func recognizeAction(c *cli.Context) error {

	initApp(c)

	if config == nil {
		return fmt.Errorf("missing config file [%s]", c.GlobalString("config-file"))
	}

	// Validate parameters. Command flags overwrite config file params.
	requiredStringParam(c, "data-set", &config.TestSet)
	requiredStringParam(c, "model-in", &config.ModelIn)

	var out *os.File
	if e := stringParam(c, "results-file", &config.ResultsFile); e == NoConfigValueError {
		glog.Infof("no results file specified, writing to stdout")
		out = os.Stdout
	} else {
		var err error
		out, err = os.Create(config.ResultsFile)
		gestrec.Fatal(err)
		defer out.Close()
	}

	// Load the model bank.
	models, e := hmm.ReadCollection(config.ModelIn)
	gestrec.Fatal(e)
	bank := make(map[string]model.Scorer, len(models))
	for name, m := range models {
		bank[name] = m
	}
	glog.Infof("Loaded %d models from %s.", len(bank), config.ModelIn)

	// Read test data, keeping item order.
	ds, e := gestrec.ReadDataSetFile(config.TestSet)
	gestrec.Fatal(e)
	items, e := ds.All()
	gestrec.Fatal(e)

	testItems := make([]recognizer.TestItem, 0, len(items))
	for _, item := range items {
		x, e := model.NewSeq([][][]float64{item.Frames})
		if e != nil {
			gestrec.Fatal(fmt.Errorf("item [%s]: %s", item.ID, e))
		}
		testItems = append(testItems, recognizer.TestItem{ID: item.ID, X: x})
	}

	scores, guesses := recognizer.Recognize(bank, testItems)

	enc := json.NewEncoder(out)
	var labeled, correct int
	for i, item := range items {
		r := gestrec.Result{ItemID: item.ID, Scores: gestrec.Scores(scores[i]), Guess: guesses[i]}
		if e := enc.Encode(&r); e != nil {
			gestrec.Fatal(e)
		}
		if len(item.Word) > 0 {
			labeled++
			if item.Word == guesses[i] {
				correct++
			}
		}
		glog.V(2).Infof("item [%s]: guess [%s]", item.ID, guesses[i])
	}
	if labeled > 0 {
		glog.Infof("Accuracy: %d/%d (%.1f%%).", correct, labeled,
			100.0*float64(correct)/float64(labeled))
	}
	return nil
}
