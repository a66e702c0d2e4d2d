// Package forms holds the request payloads accepted by the API and the
// validation rules attached to them.
package forms

type RegisterForm struct {
	Username  string `json:"username" form:"username" binding:"required,max=150,username"`
	Email     string `json:"email" form:"email" binding:"required,email,max=254"`
	Password1 string `json:"password1" form:"password1" binding:"required,min=8,password"`
	Password2 string `json:"password2" form:"password2" binding:"required,eqfield=Password1"`
}

type LoginForm struct {
	Username string `json:"username" form:"username" binding:"required,max=65"`
	Password string `json:"password" form:"password" binding:"required,max=65"`
}

// ProfileForm is bound from multipart or JSON; the avatar file is read separately.
type ProfileForm struct {
	FullName string `json:"full_name" form:"full_name" binding:"required,max=255"`
	Bio      string `json:"bio" form:"bio"`
}

type PostForm struct {
	Caption string `json:"caption" form:"caption" binding:"required,max=255"`
	Tags    string `json:"tags" form:"tags" binding:"max=255"`
}

type CommentForm struct {
	Content string `json:"content" form:"content" binding:"required"`
	Tags    string `json:"tags" form:"tags" binding:"max=255"`
}
