package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"example.com/exam-crud/internal/kata"
)

func kataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kata",
		Short: "Run the practice exercises",
	}
	cmd.AddCommand(palindromeCmd(), starsCmd(), randomCmd(), calcCmd())
	return cmd
}

func palindromeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palindrome <text...>",
		Short: "Tell whether a text reads the same backwards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if kata.IsPalindrome(text) {
				fmt.Fprintf(cmd.OutOrStdout(), "\"%s\" es un palíndromo\n", text)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "\"%s\" no es un palíndromo\n", text)
			}
			return nil
		},
	}
}

func starsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stars <n>",
		Short: "Print a triangle of n stars down to one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("'%s' no es un número entero", args[0])
			}
			for _, line := range kata.Stars(n) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func randomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random <max>",
		Short: "Pick a number between 1 and max",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			max, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("'%s' no es un número entero", args[0])
			}
			n, err := kata.RandomUpTo(max)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func calcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc <sumar|restar|multiplicar|dividir> <a> <b>",
		Short: "Basic calculator",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("'%s' no es un número", args[1])
			}
			b, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("'%s' no es un número", args[2])
			}
			res, err := kata.Calculate(kata.Operation(args[0]), a, b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(res, 'f', -1, 64))
			return nil
		},
	}
}
