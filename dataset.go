package gestrec

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/akualab/gestrec/model"
)

// An Item is one recorded gesture instance. Frames is an ordered list
// of fixed-dimension feature vectors. Word is empty for test items.
type Item struct {
	ID     string      `json:"id"`
	Word   string      `json:"word,omitempty"`
	Frames [][]float64 `json:"frames"`
}

// A DataSet is a list of item files sharing a base path.
type DataSet struct {
	Path  string   `yaml:"path"`
	Files []string `yaml:"files"`
	index int
}

// ReadDataSetFile reads a list of item files from a YAML file.
func ReadDataSetFile(fn string) (*DataSet, error) {

	f, e := os.Open(fn)
	if e != nil {
		return nil, e
	}
	defer f.Close()
	return ReadDataSet(f)
}

// ReadDataSet reads a list of item files from an io.Reader.
func ReadDataSet(r io.Reader) (*DataSet, error) {

	b, e := ioutil.ReadAll(r)
	if e != nil {
		return nil, e
	}
	ds := new(DataSet)
	e = yaml.Unmarshal(b, ds)
	if e != nil {
		return nil, e
	}
	return ds, nil
}

// Next returns the items of the next file in the list.
// Returns io.EOF when no more files are available.
func (ds *DataSet) Next() ([]Item, error) {

	if ds.index == len(ds.Files) {
		return nil, io.EOF
	}
	sep := string(os.PathSeparator)
	items, e := ReadItemsFile(ds.Path + sep + ds.Files[ds.index])
	if e != nil {
		return nil, e
	}
	ds.index++
	return items, nil
}

// All iterates over the remaining files and returns all items in file order.
func (ds *DataSet) All() ([]Item, error) {

	var all []Item
	for {
		items, e := ds.Next()
		if e == io.EOF {
			return all, nil
		}
		if e != nil {
			return nil, e
		}
		all = append(all, items...)
	}
}

// ReadItemsFile reads gesture items from a JSON file.
func ReadItemsFile(fn string) ([]Item, error) {

	f, e := os.Open(fn)
	if e != nil {
		return nil, e
	}
	defer f.Close()
	return ReadItems(f)
}

// ReadItems reads gesture items from an io.Reader.
func ReadItems(r io.Reader) ([]Item, error) {

	b, e := ioutil.ReadAll(r)
	if e != nil {
		return nil, e
	}
	var items []Item
	e = json.Unmarshal(b, &items)
	if e != nil {
		return nil, e
	}
	return items, nil
}

// A Corpus holds the training sequences for all words. For each word it
// maintains two consistent views of the same data: the ordered sequence
// list and the concatenated observation matrix with segment lengths.
type Corpus struct {
	words []string
	seqs  map[string][][][]float64
	x     map[string]model.Seq
}

// NewCorpus builds a corpus from labeled training items.
func NewCorpus(items []Item) (*Corpus, error) {

	seqs := make(map[string][][][]float64)
	for _, item := range items {
		if len(item.Word) == 0 {
			return nil, fmt.Errorf("corpus item [%s] has no word label", item.ID)
		}
		if len(item.Frames) == 0 {
			return nil, fmt.Errorf("corpus item [%s] has no frames", item.ID)
		}
		seqs[item.Word] = append(seqs[item.Word], item.Frames)
	}
	return NewCorpusFromSequences(seqs)
}

// NewCorpusFromSequences builds a corpus from a word to sequence-list map.
// The concatenated view is derived once; the two views stay consistent
// because the corpus is immutable during selection.
func NewCorpusFromSequences(seqs map[string][][][]float64) (*Corpus, error) {

	c := &Corpus{
		seqs: seqs,
		x:    make(map[string]model.Seq, len(seqs)),
	}
	for word, ss := range seqs {
		x, e := model.NewSeq(ss)
		if e != nil {
			return nil, fmt.Errorf("word [%s]: %s", word, e)
		}
		c.x[word] = x
		c.words = append(c.words, word)
	}
	sort.Strings(c.words)
	return c, nil
}

// Words returns the vocabulary in lexicographic order.
func (c *Corpus) Words() []string { return c.words }

// Len returns the vocabulary size.
func (c *Corpus) Len() int { return len(c.words) }

// Sequences returns the ordered sequence list for a word.
func (c *Corpus) Sequences(word string) [][][]float64 { return c.seqs[word] }

// Seq returns the concatenated view for a word.
func (c *Corpus) Seq(word string) model.Seq { return c.x[word] }

// Has returns true if the word is in the corpus.
func (c *Corpus) Has(word string) bool {
	_, ok := c.x[word]
	return ok
}
