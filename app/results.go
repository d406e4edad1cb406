package app

import (
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// ResultSet is the query response envelope. Key and value of an abci query
// response are both serialized ResultSets of equal length.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

// Marshal serializes the set with the application codec.
func (r *ResultSet) Marshal() ([]byte, error) {
	return crosspile.Codec.MarshalBinaryBare(r)
}

// Unmarshal loads the set from its binary form.
func (r *ResultSet) Unmarshal(bz []byte) error {
	return crosspile.Codec.UnmarshalBinaryBare(bz, r)
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []crosspile.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []crosspile.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]crosspile.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "mismatched result set size: %d keys, %d values", len(kref), len(vref))
	}
	mods := make([]crosspile.Model, len(kref))
	for i := range mods {
		mods[i] = crosspile.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult parses a ResultSet and, if it is not empty,
// unmarshals the first result into o. It returns ErrNotFound otherwise.
func UnmarshalOneResult(bz []byte, o crosspile.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return errors.Wrap(err, "result set")
	}
	if len(res.Results) == 0 {
		return errors.ErrNotFound
	}
	return o.Unmarshal(res.Results[0])
}
