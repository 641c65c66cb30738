package protocol

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

type Option interface {
	Name() string
	String() string
	Set(s string) error
}

type BoolOption struct {
	OptionName string
	Value      *bool
}

func (opt *BoolOption) Name() string {
	return opt.OptionName
}

func (opt *BoolOption) String() string {
	return fmt.Sprintf("option name %v type %v default %v",
		opt.OptionName, "check", *opt.Value)
}

func (opt *BoolOption) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return errors.Wrapf(err, "option %v", opt.OptionName)
	}
	*opt.Value = v
	return nil
}

type IntOption struct {
	OptionName string
	Min        int
	Max        int
	Value      *int
}

func (opt *IntOption) Name() string {
	return opt.OptionName
}

func (opt *IntOption) String() string {
	return fmt.Sprintf("option name %v type %v default %v min %v max %v",
		opt.OptionName, "spin", *opt.Value, opt.Min, opt.Max)
}

func (opt *IntOption) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return errors.Wrapf(err, "option %v", opt.OptionName)
	}
	if v < opt.Min || v > opt.Max {
		return errors.Errorf("option %v: %v out of range [%v, %v]",
			opt.OptionName, v, opt.Min, opt.Max)
	}
	*opt.Value = v
	return nil
}
