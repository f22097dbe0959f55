package entity

type Service string

const (
	ServiceGmail   Service = "gmail"
	ServiceOutlook Service = "outlook"
)

func (s Service) String() string {
	return string(s)
}

// URL returns the webmail entry point for the service.
func (s Service) URL() string {
	if s == ServiceOutlook {
		return "https://outlook.live.com"
	}
	return "https://mail.google.com"
}

// EmailInstruction is the structured form of a natural-language send
// instruction. Immutable once produced by a parser.
type EmailInstruction struct {
	Recipient string
	Subject   string
	Body      string
	Service   Service
}
