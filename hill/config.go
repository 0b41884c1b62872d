// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"encoding/json"
	"os"
)

// Config for hill
type Config struct {
	Input     string  `json:"input"`
	Output    string  `json:"output"`
	Message   string  `json:"message"`
	Matrix    []int64 `json:"matrix"`
	Dim       int     `json:"dim"`
	Modulus   int64   `json:"modulus"`
	Key       string  `json:"key"`
	Impl      string  `json:"impl"`
	Crypt     string  `json:"crypt"`
	BenchSize int     `json:"benchsize"`
	Log       string  `json:"log"`
	Verbose   bool    `json:"verbose"`
	Quiet     bool    `json:"quiet"`
	StatsLog  string  `json:"statslog"`
}

// defaultConfig is the file driver setup: a 4x4 key over bytes.
func defaultConfig() Config {
	return Config{
		Input:     "test.bin",
		Message:   "HybridProject",
		Dim:       4,
		Modulus:   256,
		Impl:      "auto",
		Crypt:     "all",
		BenchSize: 4 << 20,
	}
}

// textConfig is the text demo setup: a 3x3 key over 7-bit ASCII.
func textConfig() Config {
	config := defaultConfig()
	config.Dim = 3
	config.Modulus = 127
	return config
}

func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path) // For read access.
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(config)
}
