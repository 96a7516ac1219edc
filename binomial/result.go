package binomial

import (
	"github.com/beatoz/fxseries/libs/jsonx"
	"github.com/holiman/uint256"
)

type resultJSON struct {
	Value     *uint256.Int `json:"value"`
	LastTerm  *uint256.Int `json:"lastTerm"`
	Precision uint64       `json:"precision"`
	Ordering  Ordering     `json:"ordering"`
}

func (ret *Result) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(&resultJSON{
		Value:     ret.Value,
		LastTerm:  ret.LastTerm,
		Precision: ret.Precision,
		Ordering:  ret.Ordering,
	})
}

func (ret *Result) UnmarshalJSON(d []byte) error {
	tmp := &resultJSON{}
	if err := jsonx.Unmarshal(d, tmp); err != nil {
		return err
	}
	ret.Value = tmp.Value
	ret.LastTerm = tmp.LastTerm
	ret.Precision = tmp.Precision
	ret.Ordering = tmp.Ordering
	return nil
}

func (ret *Result) String() string {
	bz, _ := jsonx.MarshalIndent(ret, "", "  ")
	return string(bz)
}
