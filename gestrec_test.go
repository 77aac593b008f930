package gestrec

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
)

func TestResultJSONRoundTrip(t *testing.T) {

	r := Result{
		ItemID: "i0",
		Scores: Scores{"APPLE": -12.3, "BOOK": math.Inf(-1)},
		Guess:  "APPLE",
	}

	// Failed words carry -Inf; encoding must still succeed.
	var buf bytes.Buffer
	CheckError(t, json.NewEncoder(&buf).Encode(&r))

	var back Result
	CheckError(t, json.Unmarshal(buf.Bytes(), &back))
	if back.ItemID != "i0" || back.Guess != "APPLE" {
		t.Errorf("Wrong result after round trip: %+v", back)
	}
	CompareFloats(t, -12.3, back.Scores["APPLE"], "wrong score after round trip", 1e-12)
	if !math.IsInf(back.Scores["BOOK"], -1) {
		t.Errorf("Expected -Inf after round trip, Got: [%f]", back.Scores["BOOK"])
	}
}

func TestResultJSONAllFailed(t *testing.T) {

	r := Result{ItemID: "i1", Scores: Scores{"APPLE": math.Inf(-1)}, Guess: ""}
	b, e := json.Marshal(&r)
	CheckError(t, e)

	var back Result
	CheckError(t, json.Unmarshal(b, &back))
	if back.Guess != "" {
		t.Errorf("Expected empty guess, Got: [%s]", back.Guess)
	}
	if !math.IsInf(back.Scores["APPLE"], -1) {
		t.Errorf("Expected -Inf, Got: [%f]", back.Scores["APPLE"])
	}
}
