/*
Package glm fits the logistic regression model used by the readmission
report.  The model is a generalized linear model with the binomial family
and logit link, fit by maximum likelihood using iteratively reweighted
least squares (IRLS) or gradient optimization.

The data are provided to the model as a column-oriented Dataset, with one
named column per variable.  Fitting produces a Results value holding the
coefficient estimates, their sampling covariance, and derived quantities
(standard errors, Z-scores, p-values).
*/
package glm
