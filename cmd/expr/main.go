package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/zephyrtronium/expr"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		given        [][2]string
		nl, echo     bool
		naturalLog   bool
		powRight     bool
	)
	addgiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		given = append(given, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addgiven)
	flag.BoolVar(&nl, "n", false, "treat each input line as a separate expression")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&naturalLog, "log-e", false, `make "log" mean natural log instead of base 10`)
	flag.BoolVar(&powRight, "pow-right", false, `make "^" right-associative`)
	flag.Parse()

	var opts []expr.CompileOption
	if naturalLog {
		opts = append(opts, expr.NaturalLog())
	}
	if powRight {
		opts = append(opts, expr.RightAssociativePow())
	}

	cells := make(map[string]*float64, len(given))
	var bindings []expr.Binding
	for _, d := range given {
		v, err := strconv.ParseFloat(d[1], 64)
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		cell := new(float64)
		*cell = v
		cells[d[0]] = cell
		bindings = append(bindings, expr.Variable(d[0], cell))
	}

	lines, err := readExprs(inname, flag.Args(), nl)
	if err != nil {
		log.Fatal(err)
	}

	verb += "\n"
	for _, src := range lines {
		tree, err := expr.Compile(src, bindings, opts...)
		if err != nil {
			var ce *expr.CompileError
			if errors.As(err, &ce) {
				log.Printf("%s: parse error at byte %d", src, ce.Pos())
			} else {
				log.Printf("%s: %v", src, err)
			}
			continue
		}
		if echo {
			fmt.Printf("%v : ", tree)
		}
		fmt.Printf(verb, expr.Evaluate(tree))
		expr.Free(tree)
	}
}

// readExprs gathers the expressions to evaluate: each positional argument is
// one expression; absent those, the input file (or stdin) is read either as
// a single expression or, with nl, as one expression per line.
func readExprs(inname string, args []string, nl bool) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	f, err := infile(inname)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	defer f.Close()
	if !nl {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return []string{string(data)}, nil
	}
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

func infile(inname string) (*os.File, error) {
	switch inname {
	case "-", "":
		return os.Stdin, nil
	default:
		return os.Open(inname)
	}
}
