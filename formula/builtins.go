package formula

import (
	"strings"
)

type BuiltinFunc func([]float64) float64

var builtins = map[string]BuiltinFunc{
	"SUM":  execSum,
	"MIN":  execMin,
	"MAX":  execMax,
	"MEAN": execMean,
}

// Lookup resolves a builtin function, ignoring the case of its name.
func Lookup(name string) (BuiltinFunc, bool) {
	fn, ok := builtins[strings.ToUpper(name)]
	return fn, ok
}

func execSum(args []float64) float64 {
	var total float64
	for i := range args {
		total += args[i]
	}
	return total
}

func execMin(args []float64) float64 {
	var res float64
	for i := range args {
		if i == 0 {
			res = args[i]
			continue
		}
		res = min(res, args[i])
	}
	return res
}

func execMax(args []float64) float64 {
	var res float64
	for i := range args {
		if i == 0 {
			res = args[i]
			continue
		}
		res = max(res, args[i])
	}
	return res
}

func execMean(args []float64) float64 {
	if len(args) == 0 {
		return 0
	}
	return execSum(args) / float64(len(args))
}
