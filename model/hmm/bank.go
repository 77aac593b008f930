package hmm

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/golang/glog"
)

// WriteCollection writes a collection of HMMs to a file, one JSON
// object per line, in lexicographic model-name order.
func WriteCollection(models map[string]*Model, fn string) error {

	f, e := os.Create(fn)
	if e != nil {
		return e
	}
	defer f.Close()

	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)

	enc := json.NewEncoder(f)
	for _, name := range names {
		glog.V(4).Infof("write hmm [%s]", name)
		if e := enc.Encode(models[name]); e != nil {
			return e
		}
	}
	return nil
}

// ReadCollection reads a collection of HMMs from a file written with
// WriteCollection. The returned models are initialized and ready to score.
func ReadCollection(fn string) (map[string]*Model, error) {

	f, e := os.Open(fn)
	if e != nil {
		return nil, e
	}
	defer f.Close()
	reader := bufio.NewReader(f)

	models := make(map[string]*Model)
	for {
		b, e := reader.ReadBytes('\n')
		if e == io.EOF {
			return models, nil
		}
		if e != nil {
			return nil, e
		}

		m := new(Model)
		if e := json.Unmarshal(b, m); e != nil {
			return nil, e
		}
		if e := m.Initialize(); e != nil {
			return nil, e
		}
		models[m.ModelName] = m
	}
}
