package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeDivisionByZero  = "DIVISION_BY_ZERO"
	CodeNegativeOperand = "NEGATIVE_OPERAND"
	CodeOverflow        = "OVERFLOW"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeParseError      = "PARSE_ERROR"
	CodeUnknownOperator = "UNKNOWN_OPERATOR"
	CodeNotFound        = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeInvalidFormat:   "{{with .Input}}\"{{.}}\" is not{{else}}Input is not{{end}} a valid number",
		CodeDivisionByZero:  "Division by zero",
		CodeNegativeOperand: "Square root of a negative number is undefined",
		CodeOverflow:        "Number is too large to convert to floating point",
		CodeInvalidArgument: "Invalid argument{{with .Reason}}: {{.}}{{end}}",
		CodeParseError:      "Malformed expression{{with .Reason}}: {{.}}{{end}}",
		CodeUnknownOperator: "Unknown operator \"{{.Operator}}\"",
		CodeNotFound:        "Record not found",
	},
}

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		CodeInvalidFormat:   "{{with .Input}}\"{{.}}\" não é{{else}}A entrada não é{{end}} um número válido",
		CodeDivisionByZero:  "Divisão por zero",
		CodeNegativeOperand: "Raiz quadrada de número negativo não está definida",
		CodeOverflow:        "Número grande demais para ponto flutuante",
		CodeInvalidArgument: "Argumento inválido{{with .Reason}}: {{.}}{{end}}",
		CodeParseError:      "Expressão malformada{{with .Reason}}: {{.}}{{end}}",
		CodeUnknownOperator: "Operador desconhecido \"{{.Operator}}\"",
		CodeNotFound:        "Registro não encontrado",
	},
}
