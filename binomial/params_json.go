package binomial

import (
	"github.com/beatoz/fxseries/libs/jsonx"
	"github.com/holiman/uint256"
)

type paramsJSON struct {
	K         *uint256.Int `json:"k"`
	X         *uint256.Int `json:"x"`
	A         *uint256.Int `json:"a"`
	B         *uint256.Int `json:"b"`
	Precision uint64       `json:"precision"`
}

func (p Params) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(&paramsJSON{
		K:         p.K,
		X:         p.X,
		A:         p.A,
		B:         p.B,
		Precision: p.Precision,
	})
}

func (p *Params) UnmarshalJSON(d []byte) error {
	tmp := &paramsJSON{}
	if err := jsonx.Unmarshal(d, tmp); err != nil {
		return err
	}
	p.K, p.X, p.A, p.B = tmp.K, tmp.X, tmp.A, tmp.B
	p.Precision = tmp.Precision
	return nil
}
