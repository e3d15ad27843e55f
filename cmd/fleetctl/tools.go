package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/onebus/fleet-console/internal/pagination"
	"github.com/onebus/fleet-console/internal/validation"
)

var errInvalidCPF = errors.New("invalid CPF")

func runWindow(cmdCtx *commandContext, args []string) error {
	if len(args) != 2 {
		return usageError("expected page and total pages")
	}
	page, err := strconv.Atoi(args[0])
	if err != nil {
		return usageError("page must be an integer")
	}
	total, err := strconv.Atoi(args[1])
	if err != nil || total < 0 {
		return usageError("total pages must be a non-negative integer")
	}

	window := pagination.ComputeWindow(page, total)
	parts := make([]string, len(window))
	for i, p := range window {
		if p == page {
			parts[i] = "[" + strconv.Itoa(p) + "]"
		} else {
			parts[i] = strconv.Itoa(p)
		}
	}
	return writeln(cmdCtx.Out, strings.Join(parts, " "))
}

func runCPF(cmdCtx *commandContext, args []string) error {
	if len(args) != 1 {
		return usageError("expected one value")
	}
	masked := validation.MaskCPF(args[0])
	if !validation.ValidateCPF(args[0]) {
		if err := writef(cmdCtx.Out, "%s invalid\n", masked); err != nil {
			return err
		}
		return errInvalidCPF
	}
	return writef(cmdCtx.Out, "%s valid\n", masked)
}

func runMask(cmdCtx *commandContext, args []string) error {
	if len(args) != 2 {
		return usageError("expected kind and value")
	}
	masks := map[string]func(string) string{
		"cpf":   validation.MaskCPF,
		"phone": validation.MaskPhone,
		"rg":    validation.NormalizeRG,
		"cnh":   validation.NormalizeCNH,
	}
	mask, ok := masks[strings.ToLower(args[0])]
	if !ok {
		return usageError("unknown mask %q", args[0])
	}
	return writeln(cmdCtx.Out, mask(args[1]))
}

func runToday(cmdCtx *commandContext, args []string) error {
	if len(args) > 0 {
		return usageError("today takes no arguments")
	}
	return writeln(cmdCtx.Out, validation.TodayDate())
}
