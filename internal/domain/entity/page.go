package entity

type PageContent struct {
	URL   string
	Title string
	HTML  string
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
