// Package ofx imports bank statement files (OFX/QFX) as proto-expense
// records. Only debits become expenses; credits and transfers in are
// skipped, since the working set models spending only.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/khata-app/khata/internal/importer"
	"github.com/khata-app/khata/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// Fix missing closing angle brackets in SGML-style OFX files.
	// Pattern: <TAGNAME at end of line with no closing bracket.
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns the spending records it
// contains.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.ProtoExpense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var expenses []model.ProtoExpense
	var bankStmts, ccStmts, skipped int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			exp, skip := p.processTranList(stmt.BankTranList)
			expenses = append(expenses, exp...)
			skipped += skip
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			exp, skip := p.processTranList(stmt.BankTranList)
			expenses = append(expenses, exp...)
			skipped += skip
		}
	}

	slog.Info("Parsed OFX file",
		"expenses", len(expenses),
		"skipped_credits", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return expenses, nil
}

// processTranList converts a statement's transactions, skipping credits.
func (p *Parser) processTranList(list *ofxgo.TransactionList) ([]model.ProtoExpense, int) {
	if list == nil {
		return nil, 0
	}

	var expenses []model.ProtoExpense
	skipped := 0
	for _, ofxTx := range list.Transactions {
		// OFX uses negative amounts for debits.
		amount, _ := ofxTx.TrnAmt.Float64()
		if amount >= 0 {
			skipped++
			continue
		}

		description := p.extractDescription(ofxTx)
		expenses = append(expenses, model.ProtoExpense{
			Amount:      -amount,
			Category:    importer.GuessCategory(description),
			Description: description,
			Date:        ofxTx.DtPosted.Time,
		})
	}
	return expenses, skipped
}

// extractDescription tries to get a clean merchant description from OFX
// data.
func (p *Parser) extractDescription(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)

	// Sometimes MEMO has better merchant info than a generic NAME.
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	// Remove common processor prefixes.
	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Strip leading "MM/DD " date fragments some banks prepend.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription reports whether a NAME field carries no real
// merchant information.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "WITHDRAWAL",
		"DEPOSIT", "TRANSFER", "CHECK", "POS", "ATM",
	}
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, g := range generic {
		if upper == g {
			return true
		}
	}
	return false
}
