package models

// Article — сохранённая краткая выжимка внешней новости.
type Article struct {
	// ID — ObjectID MongoDB в hex-представлении, выставляется хранилищем.
	ID string
	// Name — отображаемый заголовок.
	Name string
	// Summary — выжимка от языковой модели (около 20 слов).
	Summary string
	// Link — ссылка на источник.
	Link string
	// Tags — метки, обычно имя и тип интереса-владельца.
	Tags []string
	// Image — ссылка на превью, может быть пустой.
	Image string
}

// NewsResult — один результат поиска новостей у провайдера.
type NewsResult struct {
	Title     string
	Link      string
	Thumbnail string
}
