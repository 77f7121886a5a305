package midi

import (
	"fmt"
	"strconv"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Ports lists the names of the available in and out ports.
func Ports() (ins, outs []string) {
	for _, p := range gomidi.GetInPorts() {
		ins = append(ins, p.String())
	}
	for _, p := range gomidi.GetOutPorts() {
		outs = append(outs, p.String())
	}
	return ins, outs
}

// OpenIn finds an input by number or by name. An empty string picks port 0.
func OpenIn(port string) (drivers.In, error) {
	if port == "" {
		port = "0"
	}
	var in drivers.In
	var err error
	if n, convErr := strconv.Atoi(port); convErr == nil {
		in, err = gomidi.InPort(n)
	} else {
		in, err = gomidi.FindInPort(port)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: in %q: %v", ErrNoPort, port, err)
	}
	return in, nil
}

// OpenOut is OpenIn for outputs.
func OpenOut(port string) (drivers.Out, error) {
	if port == "" {
		port = "0"
	}
	var out drivers.Out
	var err error
	if n, convErr := strconv.Atoi(port); convErr == nil {
		out, err = gomidi.OutPort(n)
	} else {
		out, err = gomidi.FindOutPort(port)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: out %q: %v", ErrNoPort, port, err)
	}
	return out, nil
}

// Close releases the driver.
func Close() {
	gomidi.CloseDriver()
}
