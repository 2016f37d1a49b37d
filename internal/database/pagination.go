package database

// maxOffset ограничивает смещение, чтобы (Number-1)*Size не переполнялся
const maxOffset = 1 << 30

// Page - номер страницы (с 1) и её размер
type Page struct {
	Number int
	Size   int
}

// Normalized подставляет значения по умолчанию и прижимает номер страницы
// так, чтобы смещение не превышало maxOffset
func (p Page) Normalized() Page {
	if p.Size < 1 {
		p.Size = 10
	}
	if p.Number < 1 {
		p.Number = 1
	}
	if last := maxOffset/p.Size + 1; p.Number > last {
		p.Number = last
	}
	return p
}

// Offset - число записей перед страницей
func (p Page) Offset() int {
	p = p.Normalized()
	return (p.Number - 1) * p.Size
}

func (p Page) limit() int {
	return p.Normalized().Size
}
