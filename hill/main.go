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
	"io"
	"log"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/xtaci/hillcrypt/std"
)

// VERSION is populated via build flags when packaging official binaries.
var VERSION = "SELFBUILD"

// flags shared by every command
var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "input,i",
		Value: "test.bin",
		Usage: "input file of the roundtrip driver",
	},
	cli.StringFlag{
		Name:  "matrix",
		Value: "",
		Usage: `row-major key entries, eg: "6,24,1,13,16,10,20,17,15"`,
	},
	cli.IntFlag{
		Name:  "dim,n",
		Value: 4,
		Usage: "key dimension, the block size in bytes (text: 3)",
	},
	cli.Int64Flag{
		Name:  "modulus,m",
		Value: 256,
		Usage: "alphabet size, 2 to 256 (text: 127)",
	},
	cli.StringFlag{
		Name:   "key",
		Value:  "",
		Usage:  "passphrase to derive the key matrix from when --matrix is not set",
		EnvVar: "HILL_KEY",
	},
	cli.StringFlag{
		Name:  "impl",
		Value: "auto",
		Usage: "bulk transform for 4x4 keys mod 256: auto, scalar, table",
	},
	cli.StringFlag{
		Name:  "statslog",
		Value: "",
		Usage: "append run statistics to a csv file, aware of timeformat in golang, like: ./hill-20060102.csv",
	},
	cli.StringFlag{
		Name:  "log",
		Value: "",
		Usage: "specify a log file to output, default goes to stderr",
	},
	cli.BoolFlag{
		Name:  "verbose",
		Usage: "log key inversion details",
	},
	cli.BoolFlag{
		Name:  "quiet",
		Usage: "to suppress the configuration dump",
	},
	cli.StringFlag{
		Name:  "c",
		Value: "", // when set, the referenced JSON file must exist on disk
		Usage: "config from json file, which will override the command from shell",
	},
}

func main() {
	if VERSION == "SELFBUILD" {
		// Enable timestamps + file:line to simplify debugging self-built binaries.
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "hill"
	myApp.Usage = "Hill cipher over Z/MZ"
	myApp.Version = VERSION
	myApp.Flags = globalFlags
	myApp.Action = action(defaultConfig, runRoundTrip)
	myApp.Commands = []cli.Command{
		{
			Name:   "roundtrip",
			Usage:  "encrypt the input file to <input>_encrypted, then decrypt it to <input>_decrypted.bin",
			Action: action(defaultConfig, runRoundTrip),
		},
		{
			Name:  "encrypt",
			Usage: "stream one file through the cipher",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "in", Usage: "plaintext file"},
				cli.StringFlag{Name: "out", Usage: "ciphertext file, default <in>_encrypted"},
			},
			Action: action(defaultConfig, runEncrypt),
		},
		{
			Name:  "decrypt",
			Usage: "stream one block-aligned file through the inverse cipher",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "in", Usage: "ciphertext file"},
				cli.StringFlag{Name: "out", Usage: "plaintext file, default <in>_decrypted.bin"},
			},
			Action: action(defaultConfig, runDecrypt),
		},
		{
			Name:  "text",
			Usage: "encrypt and decrypt a short message, printing every step",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "message", Value: "HybridProject", Usage: "text to encrypt"},
			},
			Action: action(textConfig, runText),
		},
		{
			Name:  "bench",
			Usage: "measure in-memory throughput of the bulk transforms and block crypts",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "size", Value: 4 << 20, Usage: "buffer size in bytes"},
				cli.StringFlag{Name: "crypt", Value: "all", Usage: "block crypt to compare against, or all"},
			},
			Action: action(defaultConfig, runBench),
		},
	}
	myApp.Run(os.Args)
}

// action wraps a command body with configuration loading, log setup and
// stats export.
func action(defaults func() Config, run func(io.Writer, *Config) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		config := defaults()
		checkError(loadConfig(c, &config))

		// Redirect logs when the user supplied a dedicated log file.
		if config.Log != "" {
			f, err := os.OpenFile(config.Log, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
			checkError(err)
			defer f.Close()
			log.SetOutput(f)
		}
		if config.Verbose {
			checkError(logging.SetLogLevel("hill", "debug"))
		}

		if !config.Quiet {
			dumpConfig(&config)
		}

		checkError(run(os.Stdout, &config))
		checkError(std.AppendStatsCSV(config.StatsLog, std.DefaultStats))
		return nil
	}
}

// loadConfig applies command line flags over the command defaults, then the
// optional JSON file over both.
func loadConfig(c *cli.Context, config *Config) error {
	if c.GlobalIsSet("input") {
		config.Input = c.GlobalString("input")
	}
	if s := c.GlobalString("matrix"); s != "" {
		values, err := parseMatrix(s)
		if err != nil {
			return err
		}
		config.Matrix = values
	}
	if c.GlobalIsSet("dim") {
		config.Dim = c.GlobalInt("dim")
	}
	if c.GlobalIsSet("modulus") {
		config.Modulus = c.GlobalInt64("modulus")
	}
	if s := c.GlobalString("key"); s != "" {
		config.Key = s
	}
	if c.GlobalIsSet("impl") {
		config.Impl = c.GlobalString("impl")
	}
	config.StatsLog = c.GlobalString("statslog")
	config.Log = c.GlobalString("log")
	config.Verbose = c.GlobalBool("verbose")
	config.Quiet = c.GlobalBool("quiet")

	// command flags
	if s := c.String("in"); s != "" {
		config.Input = s
	}
	if s := c.String("out"); s != "" {
		config.Output = s
	}
	if s := c.String("message"); s != "" {
		config.Message = s
	}
	if n := c.Int("size"); n != 0 {
		config.BenchSize = n
	}
	if s := c.String("crypt"); s != "" {
		config.Crypt = s
	}

	if path := c.GlobalString("c"); path != "" {
		if err := parseJSONConfig(config, path); err != nil {
			return errors.Wrap(err, "parseJSONConfig")
		}
	}
	return nil
}

func dumpConfig(config *Config) {
	log.Println("version:", VERSION)
	log.Println("input:", config.Input)
	log.Println("output:", config.Output)
	log.Println("dim:", config.Dim)
	log.Println("modulus:", config.Modulus)
	log.Println("matrix:", config.Matrix)
	log.Println("key set:", config.Key != "")
	log.Println("impl:", config.Impl)
	log.Println("statslog:", config.StatsLog)
}

// checkError logs the supplied fatal error and terminates the process.
func checkError(err error) {
	if err != nil {
		log.Printf("%+v\n", err)
		os.Exit(-1)
	}
}
