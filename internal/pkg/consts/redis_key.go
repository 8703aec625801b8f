package consts

const (
	PostLikeKey    = "post:like:"
	PostCommentKey = "post:comment:"
	PostShareKey   = "post:share:"
	PostViewKey    = "post:view:"
	PostDirtyKey   = "post:dirty"
	AuthorDirtyKey = "author:dirty"
)

const (
	ReportLock = "report:lock:"
)
